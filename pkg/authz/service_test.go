package authz_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docesofia/storefront/pkg/authz"
	"github.com/docesofia/storefront/pkg/serrors"
)

const testModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

const testPolicy = `p, role:admin, *, *
p, role:social_media, catalog.products, read
p, role:social_media, content.change_requests, create
`

func newTestService(t *testing.T) *authz.Service {
	t.Helper()
	dir := t.TempDir()

	modelPath := filepath.Join(dir, "model.conf")
	policyPath := filepath.Join(dir, "policy.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0o644))
	require.NoError(t, os.WriteFile(policyPath, []byte(testPolicy), 0o644))

	svc, err := authz.NewService(modelPath, policyPath, logrus.New())
	require.NoError(t, err)
	return svc
}

func TestService_Can(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		subject string
		object  string
		action  string
		want    bool
	}{
		{"admin can do anything", authz.SubjectForRole("admin"), authz.ObjectName("catalog", "products"), "delete", true},
		{"social media can read products", authz.SubjectForRole("social_media"), authz.ObjectName("catalog", "products"), "read", true},
		{"social media cannot delete products", authz.SubjectForRole("social_media"), authz.ObjectName("catalog", "products"), "delete", false},
		{"social media can submit change requests", authz.SubjectForRole("social_media"), authz.ObjectName("content", "change_requests"), "create", true},
		{"social media cannot decide change requests", authz.SubjectForRole("social_media"), authz.ObjectName("content", "change_requests"), "decide", false},
		{"unknown role is denied", authz.SubjectForRole("viewer"), authz.ObjectName("catalog", "products"), "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Can(ctx, tc.subject, tc.object, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestService_Authorize(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Authorize(ctx, authz.SubjectForRole("social_media"), authz.ObjectName("catalog", "products"), "delete")
	var be *serrors.BaseError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, serrors.CodeForbidden, be.Code)

	require.NoError(t, svc.Authorize(ctx, authz.SubjectForRole("admin"), authz.ObjectName("catalog", "products"), "delete"))
}
