package preprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

var corpus = []string{
	"The cat sat on the mat.",
	"The dog sat on the log!",
	"Cats and dogs.",
}

func TestCountVectorizer_FitTransform(t *testing.T) {
	vec := NewCountVectorizer()
	X, err := vec.FitTransform(corpus)
	require.NoError(t, err)

	vocab := vec.Vocabulary()
	assert.Equal(t, []string{"and", "cat", "cats", "dog", "dogs", "log", "mat", "on", "sat", "the"}, vocab)

	r, c := X.Dims()
	assert.Equal(t, len(vocab), r)
	assert.Equal(t, 3, c)

	the := indexOf(vocab, "the")
	assert.Equal(t, 2.0, X.At(the, 0))
	assert.Equal(t, 2.0, X.At(the, 1))
	assert.Equal(t, 0.0, X.At(the, 2))
	assert.Equal(t, 1.0, X.At(indexOf(vocab, "dogs"), 2))
}

func TestCountVectorizer_Options(t *testing.T) {
	t.Run("binary", func(t *testing.T) {
		vec := NewCountVectorizer(WithBinary(true))
		X, err := vec.FitTransform(corpus)
		require.NoError(t, err)
		assert.Equal(t, 1.0, X.At(indexOf(vec.Vocabulary(), "the"), 0))
	})

	t.Run("min df", func(t *testing.T) {
		vec := NewCountVectorizer(WithMinDF(2))
		require.NoError(t, vec.Fit(corpus))
		assert.Equal(t, []string{"on", "sat", "the"}, vec.Vocabulary())
	})

	t.Run("case sensitive", func(t *testing.T) {
		vec := NewCountVectorizer(WithLowercase(false))
		require.NoError(t, vec.Fit(corpus))
		assert.Contains(t, vec.Vocabulary(), "The")
		assert.Contains(t, vec.Vocabulary(), "Cats")
	})

	t.Run("custom tokenizer", func(t *testing.T) {
		vec := NewCountVectorizer(WithTokenizer(strings.Fields))
		require.NoError(t, vec.Fit([]string{"a-b c"}))
		assert.Equal(t, []string{"a-b", "c"}, vec.Vocabulary())
	})
}

func TestCountVectorizer_UnknownTermsIgnored(t *testing.T) {
	vec := NewCountVectorizer()
	require.NoError(t, vec.Fit(corpus))

	X, err := vec.Transform([]string{"zebra cat cat"})
	require.NoError(t, err)
	assert.Equal(t, 1, X.NNZ())
	assert.Equal(t, 2.0, X.At(indexOf(vec.Vocabulary(), "cat"), 0))
}

func TestCountVectorizer_Errors(t *testing.T) {
	vec := NewCountVectorizer()
	_, err := vec.Transform(corpus)
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	assert.True(t, errors.Is(vec.Fit(nil), errors.ErrEmptyData))

	var vErr *errors.ValidationError
	assert.True(t, errors.As(NewCountVectorizer(WithMinDF(0)).Fit(corpus), &vErr))

	var valErr *errors.ValueError
	assert.True(t, errors.As(NewCountVectorizer(WithMinDF(10)).Fit(corpus), &valErr))
}

func indexOf(vocab []string, term string) int {
	for i, v := range vocab {
		if v == term {
			return i
		}
	}
	return -1
}
