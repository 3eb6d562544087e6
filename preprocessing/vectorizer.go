// Package preprocessing turns raw documents into the feature×document
// matrices consumed by the mDA estimators.
package preprocessing

import (
	"sort"
	"strings"
	"unicode"

	"github.com/james-bowman/sparse"

	"github.com/YuminosukeSato/mda/core/model"
	"github.com/YuminosukeSato/mda/pkg/errors"
	"github.com/YuminosukeSato/mda/pkg/log"
)

// CountVectorizer はscikit-learnのCountVectorizerに相当する bag-of-words 変換器
// 出力は語彙×文書の疎行列（列が文書）
type CountVectorizer struct {
	state *model.StateManager

	// ハイパーパラメータ
	binary    bool                      // 出現回数ではなく出現有無（0/1）を数える
	minDF     int                       // 語彙に残す最小文書頻度
	lowercase bool                      // トークン化の前に小文字化する
	tokenize  func(doc string) []string // トークナイザ

	// 学習済みパラメータ
	vocabulary []string
	index      map[string]int
}

// VectorizerOption configures a CountVectorizer.
type VectorizerOption func(*CountVectorizer)

// WithBinary は出現回数の代わりに0/1を使うかを設定
func WithBinary(binary bool) VectorizerOption {
	return func(v *CountVectorizer) {
		v.binary = binary
	}
}

// WithMinDF は語彙に含める最小文書頻度を設定
func WithMinDF(minDF int) VectorizerOption {
	return func(v *CountVectorizer) {
		v.minDF = minDF
	}
}

// WithLowercase は小文字化の有無を設定
func WithLowercase(lowercase bool) VectorizerOption {
	return func(v *CountVectorizer) {
		v.lowercase = lowercase
	}
}

// WithTokenizer はトークナイザを差し替える
func WithTokenizer(fn func(doc string) []string) VectorizerOption {
	return func(v *CountVectorizer) {
		v.tokenize = fn
	}
}

// NewCountVectorizer は新しいCountVectorizerを作成する
//
// 使用例:
//
//	vec := preprocessing.NewCountVectorizer(preprocessing.WithMinDF(2))
//	X, err := vec.FitTransform(docs)
func NewCountVectorizer(opts ...VectorizerOption) *CountVectorizer {
	v := &CountVectorizer{
		state:     model.NewStateManager(),
		minDF:     1,
		lowercase: true,
		tokenize:  Tokenize,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Tokenize splits doc on every rune that is neither a letter nor a digit.
func Tokenize(doc string) []string {
	return strings.FieldsFunc(doc, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (v *CountVectorizer) terms(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	return v.tokenize(doc)
}

// Fit は文書集合から語彙を学習する
// 語彙は辞書順に並び、行番号はその順序に従う
func (v *CountVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.NewModelError("CountVectorizer.Fit", "empty data", errors.ErrEmptyData)
	}
	if v.minDF < 1 {
		return errors.NewValidationError("min_df", "must be at least 1", v.minDF)
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.minDF {
			vocabulary = append(vocabulary, term)
		}
	}
	if len(vocabulary) == 0 {
		return errors.NewValueError("CountVectorizer.Fit",
			"empty vocabulary; no term reaches min_df")
	}
	sort.Strings(vocabulary)

	v.vocabulary = vocabulary
	v.index = make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		v.index[term] = i
	}
	v.state.SetFitted(len(docs), len(vocabulary))

	log.GetLoggerWithName("preprocessing").Debug("Vocabulary built",
		log.ModelNameKey, "CountVectorizer",
		log.SamplesKey, len(docs),
		log.FeaturesKey, len(vocabulary),
	)
	return nil
}

// Transform は文書を語彙×文書の疎行列に変換する
// 語彙にない語は無視される
func (v *CountVectorizer) Transform(docs []string) (*sparse.CSC, error) {
	if err := v.state.RequireFitted("CountVectorizer", "Transform"); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.NewModelError("CountVectorizer.Transform", "empty data", errors.ErrEmptyData)
	}

	dok := sparse.NewDOK(len(v.vocabulary), len(docs))
	for j, doc := range docs {
		counts := make(map[int]float64)
		for _, term := range v.terms(doc) {
			if i, ok := v.index[term]; ok {
				counts[i]++
			}
		}
		for i, n := range counts {
			if v.binary {
				n = 1
			}
			dok.Set(i, j, n)
		}
	}
	return dok.ToCSC(), nil
}

// FitTransform はFitとTransformを続けて実行する
func (v *CountVectorizer) FitTransform(docs []string) (*sparse.CSC, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Vocabulary returns the learned terms; term i labels row i of the output.
func (v *CountVectorizer) Vocabulary() []string {
	return append([]string(nil), v.vocabulary...)
}

// IsFitted reports whether a vocabulary has been learned.
func (v *CountVectorizer) IsFitted() bool {
	return v.state.IsFitted()
}
