package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

// SaveWeights は重みのスナップショットをgob形式でファイルに保存する
//
// 使用例:
//
//	w, err := m.ExportWeights()
//	// ...
//	err = model.SaveWeights(w, "mda.gob")
func SaveWeights(weights *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	return SaveWeightsToWriter(weights, file)
}

// LoadWeights はファイルから重みのスナップショットを読み込み、検証する
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return LoadWeightsFromReader(file)
}

// SaveWeightsToWriter は重みをio.Writerに保存する
func SaveWeightsToWriter(weights *ModelWeights, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(weights); err != nil {
		return errors.Wrap(err, "encode weights")
	}
	return nil
}

// LoadWeightsFromReader はio.Readerから重みを読み込み、検証する
func LoadWeightsFromReader(r io.Reader) (*ModelWeights, error) {
	var weights ModelWeights
	if err := gob.NewDecoder(r).Decode(&weights); err != nil {
		return nil, errors.Wrap(err, "decode weights")
	}
	if err := weights.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid weights")
	}
	return &weights, nil
}
