package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchRelationshipState(t *testing.T) {
	results := []SearchResult{
		{User: User{ID: "u1", Username: "ada"}, Relationship: RelationNone},
		{User: User{ID: "u2", Username: "brian"}, Relationship: RelationFriend},
		{User: User{ID: "u3", Username: "grace"}, Relationship: RelationNone},
	}

	patched := PatchRelationshipState(results, "u1", RelationRequestedOutgoing)
	require.True(t, patched)
	require.Equal(t, RelationRequestedOutgoing, results[0].Relationship)

	// Other entries are untouched
	require.Equal(t, RelationFriend, results[1].Relationship)
	require.Equal(t, RelationNone, results[2].Relationship)
}

func TestPatchRelationshipStateMissingUser(t *testing.T) {
	results := []SearchResult{
		{User: User{ID: "u1"}, Relationship: RelationNone},
	}

	patched := PatchRelationshipState(results, "nope", RelationFriend)
	require.False(t, patched)
	require.Equal(t, RelationNone, results[0].Relationship)
}

func TestPatchRelationshipStateEmpty(t *testing.T) {
	require.False(t, PatchRelationshipState(nil, "u1", RelationFriend))
}
