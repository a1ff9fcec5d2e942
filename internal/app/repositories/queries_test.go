package repositories

import (
	"strings"
	"testing"

	"github.com/bathudi/admissions/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFragmentQuery(t *testing.T) {
	sql, args, err := titleFragmentQuery(newBuilder(), "50%_off").ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT "+strings.Join(courseColumns, ", ")+
			" FROM courses WHERE POSITION(LOWER($1) IN LOWER(title)) > 0 ORDER BY id ASC",
		sql)
	assert.Equal(t, []interface{}{"50%_off"}, args, "the fragment is bound as-is, never as a LIKE pattern")
	assert.NotContains(t, sql, "is_active", "inactive courses are still resolvable")
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"thabo", "thabo"},
		{"50%", `50\%`},
		{"first_name", `first\_name`},
		{`back\slash`, `back\\slash`},
		{`50%_off\`, `50\%\_off\\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}

func TestApplicationFilterWhere(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		sql, args, err := newBuilder().Select("COUNT(*)").From("applications").
			Where(applicationFilterWhere(models.ApplicationFilter{Search: "   "})).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*) FROM applications WHERE (1=1)", sql)
		assert.Empty(t, args)
	})

	t.Run("status and escaped search", func(t *testing.T) {
		status := models.StatusPending
		sql, args, err := newBuilder().Select("COUNT(*)").From("applications").
			Where(applicationFilterWhere(models.ApplicationFilter{Status: &status, Search: " 100%_sure "})).ToSql()
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT COUNT(*) FROM applications WHERE (status = $1 AND "+
				"(name ILIKE $2 OR surname ILIKE $3 OR email ILIKE $4 OR mobile ILIKE $5))",
			sql)
		pattern := `%100\%\_sure%`
		assert.Equal(t, []interface{}{models.StatusPending, pattern, pattern, pattern, pattern}, args)
	})

	t.Run("fee verified", func(t *testing.T) {
		verified := false
		sql, args, err := newBuilder().Select("COUNT(*)").From("applications").
			Where(applicationFilterWhere(models.ApplicationFilter{FeeVerified: &verified})).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*) FROM applications WHERE (fee_verified = $1)", sql)
		assert.Equal(t, []interface{}{false}, args)
	})
}

func TestApplicationStatsQuery(t *testing.T) {
	sql, args, err := applicationStatsQuery(newBuilder()).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*), "+
		"COUNT(*) FILTER (WHERE status = 'pending'), "+
		"COUNT(*) FILTER (WHERE status = 'approved'), "+
		"COUNT(*) FILTER (WHERE status = 'rejected'), "+
		"COUNT(*) FILTER (WHERE status = 'contacted'), "+
		"COUNT(*) FILTER (WHERE fee_verified) "+
		"FROM applications", sql)
	assert.Empty(t, args)
}
