package preprocessing

import (
	"gonum.org/v1/gonum/stat"

	"github.com/causalflow/causalgo/dataset"
	"github.com/causalflow/causalgo/pkg/errors"
)

// UnknownCategory はカテゴリ列の観測値がゼロ件の場合に使用される番兵ラベル
const UnknownCategory = "unknown"

// columnStatistic は学習時に記録される列ごとの補完統計量
// 数値列は観測値の平均、カテゴリ列は最頻値を持つ
type columnStatistic struct {
	Kind dataset.Kind
	Mean float64
	Mode string
}

// fitStatistics は各列の補完統計量を計算する
//
// 数値列: 観測値の平均。観測値がゼロ件の場合は平均が定義できないため
// UndefinedStatisticErrorを返す（NaNを黙って伝播させない）。
// includeNumericがfalseの場合、数値列は反復補完モデルに委ねるため統計量を記録しない。
//
// カテゴリ列: 最頻値。同数の場合は走査順で最初に出現した値を採用し、
// 観測値がゼロ件の場合は番兵ラベル "unknown" を採用する。
func fitStatistics(op string, f *dataset.Frame, includeNumeric bool) (map[string]columnStatistic, error) {
	stats := make(map[string]columnStatistic, f.NumCols())

	for i := 0; i < f.NumCols(); i++ {
		col := f.ColumnAt(i)
		switch col.Kind() {
		case dataset.Numeric:
			if !includeNumeric {
				continue
			}
			observed := make([]float64, 0, col.Len())
			for r := 0; r < col.Len(); r++ {
				if !col.IsMissing(r) {
					observed = append(observed, col.Float(r))
				}
			}
			if len(observed) == 0 {
				return nil, errors.NewUndefinedStatisticError(op, col.Name(), "mean")
			}
			stats[col.Name()] = columnStatistic{Kind: dataset.Numeric, Mean: stat.Mean(observed, nil)}

		case dataset.Categorical:
			stats[col.Name()] = columnStatistic{Kind: dataset.Categorical, Mode: categoricalMode(col)}
		}
	}
	return stats, nil
}

// categoricalMode は走査順のタイブレークで最頻値を求める
func categoricalMode(col *dataset.Column) string {
	counts := make(map[string]int)
	var order []string
	for r := 0; r < col.Len(); r++ {
		if col.IsMissing(r) {
			continue
		}
		v := col.Label(r)
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return UnknownCategory
	}

	mode := order[0]
	best := counts[mode]
	for _, v := range order[1:] {
		if counts[v] > best {
			mode, best = v, counts[v]
		}
	}
	return mode
}

// applyStatistics は記録済みの統計量で欠損セルを埋めた新しいフレームを返す
// 補完統計量は列名をキーに引くため、記録されていない列の欠損はそのまま残る
func applyStatistics(f *dataset.Frame, stats map[string]columnStatistic) *dataset.Frame {
	out := f.Clone()
	for i := 0; i < out.NumCols(); i++ {
		col := out.ColumnAt(i)
		st, ok := stats[col.Name()]
		if !ok || st.Kind != col.Kind() {
			continue
		}
		for r := 0; r < col.Len(); r++ {
			if !col.IsMissing(r) {
				continue
			}
			if col.Kind() == dataset.Numeric {
				col.SetFloat(r, st.Mean)
			} else {
				col.SetLabel(r, st.Mode)
			}
		}
	}
	return out
}
