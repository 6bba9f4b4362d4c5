package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type set map[string]bool

func (s set) Has(id string) bool { return s[id] }

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies {
		got, err := ParsePolicy(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePolicy(" MERGE ")
	require.NoError(t, err)
	assert.Equal(t, Merge, got)

	_, err = ParsePolicy("append")
	assert.ErrorContains(t, err, `unknown conflict policy "append"`)
}

func TestResolve_FreeIdentifier(t *testing.T) {
	for _, p := range Policies {
		id, action := Resolve("feijao_preto", set{"arroz": true}, 2, p)
		assert.Equal(t, "feijao_preto", id, "policy %s", p)
		assert.Equal(t, Added, action, "policy %s", p)
	}
}

func TestResolve_Taken(t *testing.T) {
	taken := set{"feijao_preto": true}
	tests := []struct {
		policy Policy
		wantID string
		want   Action
	}{
		{Skip, "feijao_preto", Skipped},
		{Overwrite, "feijao_preto", Overwritten},
		{Merge, "feijao_preto", Merged},
		{Suffix, "feijao_preto_ds2", Added},
	}
	for _, tt := range tests {
		id, action := Resolve("feijao_preto", taken, 2, tt.policy)
		assert.Equal(t, tt.wantID, id, "policy %s", tt.policy)
		assert.Equal(t, tt.want, action, "policy %s", tt.policy)
	}
}

func TestResolve_SuffixCounter(t *testing.T) {
	taken := set{"sal": true, "sal_ds3": true, "sal_ds3_2": true}
	id, action := Resolve("sal", taken, 3, Suffix)
	assert.Equal(t, "sal_ds3_3", id)
	assert.Equal(t, Added, action)

	id, _ = Resolve("sal", set{"sal": true, "sal_ds3": true}, 3, Suffix)
	assert.Equal(t, "sal_ds3_2", id)
}
