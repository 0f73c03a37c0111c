package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker_DefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{RoleStudent, PermSubmissionCreate, true},
		{RoleStudent, PermQuizCreate, false},
		{RoleStudent, PermSubmissionViewAll, false},
		{RoleTeacher, PermQuestionValidate, true},
		{RoleTeacher, PermSubmissionCreate, false},
		{RoleAdmin, "anything:at-all", true},
		{"guest", PermQuizView, false},
	}
	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.perm, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Has(tc.role, tc.perm))
		})
	}
}

func TestChecker_Can(t *testing.T) {
	c := NewChecker(nil)
	assert.False(t, c.Can(context.Background(), PermQuizView))
	assert.True(t, c.Can(WithRole(context.Background(), RoleStudent), PermQuizView))
}

func TestRequireAny(t *testing.T) {
	c := NewChecker(nil)
	h := c.RequireAny(PermQuizCreate, PermSubmissionViewAll)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for role, code := range map[string]int{
		"":          http.StatusForbidden,
		RoleStudent: http.StatusForbidden,
		RoleTeacher: http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithRole(req.Context(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, "role %q", role)
	}
}
