package preprocessing

import (
	"sort"

	"github.com/causalflow/causalgo/dataset"
)

// oneHotEncoder はカテゴリ列を学習時に観測された値ごとの指示列へ展開する
// 指示列の名前は `<列名>_<値>` で、元のカテゴリ列は出力から落とされる
type oneHotEncoder struct {
	// columns は学習時に観測したカテゴリ列（入力順）
	columns []string

	// categories は列ごとの観測カテゴリ（辞書順ソート済み、決定的なスキーマ順序のため）
	categories map[string][]string
}

func newOneHotEncoder() *oneHotEncoder {
	return &oneHotEncoder{categories: make(map[string][]string)}
}

// encodedName は指示列の命名規則
func encodedName(column, value string) string {
	return column + "_" + value
}

// fit は学習フレームのカテゴリ列ごとに観測カテゴリを記録する
// 学習後に観測されたカテゴリだけが指示列を持つ。未知のカテゴリは列を増やさない
func (e *oneHotEncoder) fit(f *dataset.Frame) {
	for i := 0; i < f.NumCols(); i++ {
		col := f.ColumnAt(i)
		if col.Kind() != dataset.Categorical {
			continue
		}

		seen := make(map[string]bool)
		var values []string
		for r := 0; r < col.Len(); r++ {
			if col.IsMissing(r) {
				continue
			}
			v := col.Label(r)
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Strings(values)

		e.columns = append(e.columns, col.Name())
		e.categories[col.Name()] = values
	}
}

// encode はフレームを数値テーブルへ符号化する
// 数値列は入力順のままコピーし、カテゴリ列は末尾に指示列として展開する
// （pandasのget_dummiesと同じ列配置）
//
// 学習時に観測されなかったカテゴリと、学習時に存在しなかったカテゴリ列は
// 出力に列を作らず、戻り値の第2要素として報告される。
func (e *oneHotEncoder) encode(f *dataset.Frame) (*encodedTable, []string) {
	tbl := newEncodedTable(f.NumRows())
	var unseen []string

	for i := 0; i < f.NumCols(); i++ {
		col := f.ColumnAt(i)
		if col.Kind() != dataset.Numeric {
			continue
		}
		values := make([]float64, col.Len())
		for r := 0; r < col.Len(); r++ {
			values[r] = col.Float(r)
		}
		tbl.addColumn(col.Name(), values)
	}

	for i := 0; i < f.NumCols(); i++ {
		col := f.ColumnAt(i)
		if col.Kind() != dataset.Categorical {
			continue
		}
		cats, known := e.categories[col.Name()]
		if !known {
			unseen = append(unseen, col.Name())
			continue
		}

		indicator := make(map[string][]float64, len(cats))
		for _, v := range cats {
			indicator[v] = make([]float64, col.Len())
		}
		reported := make(map[string]bool)
		for r := 0; r < col.Len(); r++ {
			if col.IsMissing(r) {
				continue
			}
			v := col.Label(r)
			ind, ok := indicator[v]
			if !ok {
				// 学習時に無かったカテゴリは指示列を持たない
				key := encodedName(col.Name(), v)
				if !reported[key] {
					reported[key] = true
					unseen = append(unseen, key)
				}
				continue
			}
			ind[r] = 1.0
		}
		for _, v := range cats {
			tbl.addColumn(encodedName(col.Name(), v), indicator[v])
		}
	}
	return tbl, unseen
}
