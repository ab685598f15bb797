package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/core/parallel"
)

// encodedTable は符号化途中の列指向テーブル
// 列名の順序を保持したまま数値列を蓄積する
type encodedTable struct {
	rows  int
	names []string
	cols  [][]float64
	index map[string]int
}

func newEncodedTable(rows int) *encodedTable {
	return &encodedTable{rows: rows, index: make(map[string]int)}
}

// addColumn は列を末尾に追加する（名前の重複は呼び出し側が保証する）
func (t *encodedTable) addColumn(name string, values []float64) {
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.cols = append(t.cols, values)
}

// column は指定名の列を返す
func (t *encodedTable) column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// alignColumns は目標スキーマのdiffに基づき列を揃える単一のプリミティブ
// 目標リストに存在して実テーブルに無い列はゼロ列として合成し、
// その後、目標リストの順序で厳密に射影する。余分な列は落とされる。
// 戻り値の第2要素は合成されたゼロ列の名前一覧。
func alignColumns(target []string, tbl *encodedTable) (*encodedTable, []string) {
	out := newEncodedTable(tbl.rows)
	var synthesized []string
	for _, name := range target {
		col, ok := tbl.column(name)
		if !ok {
			col = make([]float64, tbl.rows)
			synthesized = append(synthesized, name)
		}
		out.addColumn(name, col)
	}
	return out, synthesized
}

// toDense はテーブルをrow-majorの密行列へ変換する
// 値は倍精度に揃えられ、行数の大きいテーブルでは行チャンク単位で並列化する
func (t *encodedTable) toDense() *mat.Dense {
	X := mat.NewDense(t.rows, len(t.names), nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(t.rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := range t.cols {
				X.Set(i, j, t.cols[j][i])
			}
		}
	})
	return X
}
