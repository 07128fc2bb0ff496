package domain_test

import (
	"testing"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoSections_GetSet(t *testing.T) {
	var m domain.MemoSections
	for _, s := range domain.MemoSectionOrder {
		require.NoError(t, m.Set(s, "text for "+string(s)))
	}
	for _, s := range domain.MemoSectionOrder {
		assert.Equal(t, "text for "+string(s), m.Get(s))
	}
	assert.Equal(t, "text for Open Questions", m.OpenQuestions)

	err := m.Set(domain.MemoSection("Team"), "x")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMemoSections_ContentRoundTrip(t *testing.T) {
	m := domain.MemoSections{Summary: "A"}

	content, err := m.MarshalContent()
	require.NoError(t, err)
	assert.Contains(t, content, `"Open Questions":""`)

	parsed, err := domain.ParseMemoContent(content)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestParseMemoContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.MemoSections
		wantErr bool
	}{
		{name: "blank", content: "  ", want: domain.MemoSections{}},
		{name: "partial", content: `{"Risks":"burn"}`, want: domain.MemoSections{Risks: "burn"}},
		{name: "not json", content: "plain text", wantErr: true},
		{name: "unknown section", content: `{"Team":"x"}`, wantErr: true},
		{name: "wrong case key", content: `{"summary":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMemoContent(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMemoSection_CaseInsensitive(t *testing.T) {
	s, err := domain.ParseMemoSection("open questions")
	require.NoError(t, err)
	assert.Equal(t, domain.SectionOpenQuestions, s)

	_, err = domain.ParseMemoSection("Team")
	assert.Error(t, err)
}

func TestMemoSections_MapAndEmpty(t *testing.T) {
	var m domain.MemoSections
	assert.True(t, m.IsEmpty())
	assert.Len(t, m.Map(), 6)

	m.Traction = "10k MAU"
	assert.False(t, m.IsEmpty())
	assert.Equal(t, "10k MAU", m.Map()["Traction"])
}
