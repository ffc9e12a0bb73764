package groupby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	order int
	name  string
}

func TestByKey_GroupsAndSortsDescending(t *testing.T) {
	things := []thing{
		{1, "foo"},
		{2, "baz"},
		{1, "bar"},
		{3, "qux"},
	}

	groups := ByKey(things, func(v thing) int { return v.order })
	require.Len(t, groups, 3)

	assert.Equal(t, 3, groups[0].Key)
	assert.Equal(t, 2, groups[1].Key)
	assert.Equal(t, 1, groups[2].Key)

	require.Len(t, groups[2].Records, 2)
	assert.Equal(t, "foo", groups[2].Records[0].name)
	assert.Equal(t, "bar", groups[2].Records[1].name)
}

func TestByKey_StringKeys(t *testing.T) {
	records := []string{"apple", "avocado", "banana"}

	groups := ByKey(records, func(v string) string { return v[:1] })
	require.Len(t, groups, 2)

	assert.Equal(t, "b", groups[0].Key)
	assert.Equal(t, "a", groups[1].Key)
	assert.Equal(t, []string{"apple", "avocado"}, groups[1].Records)
}

func TestByKey_Empty(t *testing.T) {
	groups := ByKey(nil, func(v thing) int { return v.order })
	assert.Empty(t, groups)
}
