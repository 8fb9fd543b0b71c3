package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/docesofia/storefront/modules/catalog/domain/category"
	"github.com/docesofia/storefront/modules/catalog/domain/product"
	catalogpersistence "github.com/docesofia/storefront/modules/catalog/infrastructure/persistence"
	"github.com/docesofia/storefront/modules/content/domain/siteconfig"
	contentpersistence "github.com/docesofia/storefront/modules/content/infrastructure/persistence"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/configuration"
	"github.com/docesofia/storefront/pkg/logging"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo catalog data",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			pool, err := pgxpool.New(cmd.Context(), conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := logging.ConsoleLogger(logrus.InfoLevel)
			ctx := composables.WithPool(cmd.Context(), pool)
			return composables.InTx(ctx, func(txCtx context.Context) error {
				return seed(txCtx, logger)
			})
		},
	}
}

func seed(ctx context.Context, logger *logrus.Logger) error {
	categories := catalogpersistence.NewCategoryRepository()
	products := catalogpersistence.NewProductRepository()
	siteConfig := contentpersistence.NewSiteConfigRepository()

	for _, data := range []category.CreateData{
		{Name: "Bolos", Slug: "bolos"},
		{Name: "Doces", Slug: "doces"},
		{Name: "Tortas", Slug: "tortas"},
	} {
		if _, err := categories.Create(ctx, &data); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", data.Slug, err)
		}
		logger.WithFields(logrus.Fields{"slug": data.Slug}).Info("seeded category")
	}

	for _, data := range []product.CreateData{
		{
			Slug:         "bolo-de-chocolate",
			Name:         "Bolo de Chocolate",
			Description:  "Massa fofinha com cobertura de brigadeiro.",
			Price:        decimal.RequireFromString("89.90"),
			Category:     "Bolos",
			CategorySlug: "bolos",
			Images:       []string{"https://placehold.co/600x400?text=Bolo"},
			Featured:     true,
		},
		{
			Slug:         "brigadeiro-gourmet",
			Name:         "Brigadeiro Gourmet",
			Description:  "Caixa com 12 unidades.",
			Price:        decimal.RequireFromString("36.00"),
			Category:     "Doces",
			CategorySlug: "doces",
			Images:       []string{"https://placehold.co/600x400?text=Brigadeiro"},
		},
		{
			Slug:         "torta-de-limao",
			Name:         "Torta de Limão",
			Description:  "Base crocante e merengue maçaricado.",
			Price:        decimal.RequireFromString("74.50"),
			Category:     "Tortas",
			CategorySlug: "tortas",
			Images:       []string{"https://placehold.co/600x400?text=Torta"},
		},
	} {
		if _, err := products.Create(ctx, &data); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", data.Slug, err)
		}
		logger.WithFields(logrus.Fields{"slug": data.Slug}).Info("seeded product")
	}

	story := "Confeitaria artesanal feita em casa, com receitas de família."
	if _, err := siteConfig.Update(ctx, &siteconfig.UpdateData{AboutStory: &story}); err != nil {
		return fmt.Errorf("failed to seed site config: %w", err)
	}
	return nil
}
