package models

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "markeep/internal/errors"
)

func TestNewPageRequest(t *testing.T) {
	req, err := NewPageRequest(2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(20), req.Offset())

	for _, tc := range []struct{ page, size int }{{-1, 10}, {0, 0}, {0, -3}, {0, MaxPageSize + 1}} {
		_, err := NewPageRequest(tc.page, tc.size)
		require.ErrorIs(t, err, domainerrors.ErrInvalidArgument, "page=%d size=%d", tc.page, tc.size)
	}
}

func TestNewPageRequest_OffsetOverflow(t *testing.T) {
	_, err := NewPageRequest(math.MaxInt64/50, MaxPageSize)
	require.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	_, err = NewPageRequest(math.MaxInt, 1)
	require.ErrorIs(t, err, domainerrors.ErrInvalidArgument)

	last := math.MaxInt64/MaxPageSize - 1
	req, err := NewPageRequest(last, MaxPageSize)
	require.NoError(t, err)
	require.Positive(t, req.Offset())
}

func TestNewPage(t *testing.T) {
	req := PageRequest{Page: 1, Size: 10}

	p := NewPage([]int{1, 2, 3}, req, 13)
	require.Equal(t, 2, p.TotalPages)
	require.Equal(t, 1, p.PageNumber)
	require.Equal(t, 10, p.PageSize)

	empty := NewPage[int](nil, req, 0)
	require.NotNil(t, empty.Content)
	require.Zero(t, empty.TotalPages)

	exact := NewPage([]int{}, PageRequest{Page: 0, Size: 5}, 10)
	require.Equal(t, 2, exact.TotalPages)
}

func TestUserLinkedProviders(t *testing.T) {
	u := User{GoogleLinked: true, KakaoLinked: true}
	require.Equal(t, []string{ProviderGoogle, ProviderKakao}, u.LinkedProviders())
	require.False(t, u.HasPassword())

	hash := "$2a$10$hash"
	u.PasswordHash = &hash
	require.True(t, u.HasPassword())
}

func TestNormalizeKeywords(t *testing.T) {
	got, err := NormalizeKeywords([]string{" travel ", "", "2024", "TRAVEL", "  ", "2024"})
	require.NoError(t, err)
	require.Equal(t, []string{"travel", "2024"}, got)

	empty, err := NormalizeKeywords(nil)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestNormalizeKeywords_TooMany(t *testing.T) {
	raw := make([]string, 0, MaxKeywords+1)
	for i := 0; i <= MaxKeywords; i++ {
		raw = append(raw, fmt.Sprintf("k%d", i))
	}

	_, err := NormalizeKeywords(raw)
	require.ErrorIs(t, err, domainerrors.ErrInvalidArgument)
}
