package preprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/core/model"
	"github.com/causalflow/causalgo/pkg/errors"
	mllog "github.com/causalflow/causalgo/pkg/log"
)

// デフォルトの反復補完パラメータ
const (
	defaultMaxIter = 10
	defaultTol     = 1e-3

	// ridgeLambda は条件付き回帰の正則化係数（特異行列を避けるため）
	ridgeLambda = 1e-3
)

// IterativeImputer はMICE風の多変量反復補完器
// 各列を他の全列で条件付けた回帰でモデル化し、推定が安定するまで
// ラウンドロビンで欠損値を更新する。乱数シードは明示的な設定値であり、
// 同じシード・同じデータに対して再現可能な結果を返す
type IterativeImputer struct {
	model.BaseEstimator

	// MaxIter は補完ラウンドの最大回数
	MaxIter int

	// Tol は収束判定の許容値（観測値の最大絶対値に対する相対値）
	Tol float64

	// RandomState は列の巡回順を決める乱数シード
	RandomState int64

	columns    []string
	means      []float64
	regressors []*ridgeRegressor
	visitOrder []int
	nFeatures  int
}

// NewIterativeImputer は新しいIterativeImputerを作成する
func NewIterativeImputer(randomState int64) *IterativeImputer {
	return &IterativeImputer{
		MaxIter:     defaultMaxIter,
		Tol:         defaultTol,
		RandomState: randomState,
	}
}

// Columns は学習時に記録された列リストを返す
// 変換時の入力はこのリストに揃えてから渡す必要がある
func (imp *IterativeImputer) Columns() []string {
	out := make([]string, len(imp.columns))
	copy(out, imp.columns)
	return out
}

// FitTransform は欠損セル（NaN）を含む行列で多変量補完モデルを学習し、
// 補完済みの行列を返す
//
// アルゴリズム:
//  1. 各列の欠損を観測値の平均で初期化する（観測値ゼロ件の列はエラー）
//  2. シードから決めた巡回順で、各列を他の全列で条件付けたリッジ回帰に当てはめ、
//     欠損セルの推定値を更新する
//  3. 推定値の最大変化量が許容値を下回るか、MaxIterに達するまで繰り返す
func (imp *IterativeImputer) FitTransform(X *mat.Dense, columns []string) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("IterativeImputer.FitTransform", "empty data", errors.ErrEmptyData)
	}
	if len(columns) != c {
		return nil, errors.NewDimensionError("IterativeImputer.FitTransform", c, len(columns), 1)
	}

	imp.nFeatures = c
	imp.columns = make([]string, c)
	copy(imp.columns, columns)

	missing := missingMask(X)

	means, err := observedMeans("IterativeImputer.FitTransform", X, missing, imp.columns)
	if err != nil {
		return nil, err
	}
	imp.means = means

	work := mat.DenseCopyOf(X)
	fillWithMeans(work, missing, means)

	// 巡回順はシードから一度だけ決める（再現性のため）
	rng := rand.New(rand.NewSource(imp.RandomState))
	imp.visitOrder = rng.Perm(c)

	scale := observedScale(X, missing)
	imp.regressors = make([]*ridgeRegressor, c)

	converged := false
	rounds := 0
	for iter := 0; iter < imp.MaxIter; iter++ {
		rounds = iter + 1
		maxChange := 0.0
		for _, j := range imp.visitOrder {
			reg := fitRidge(work, missing, j)
			imp.regressors[j] = reg

			for i := 0; i < r; i++ {
				if !missing[i][j] {
					continue
				}
				pred := reg.predict(work, i)
				change := math.Abs(pred - work.At(i, j))
				if change > maxChange {
					maxChange = change
				}
				work.Set(i, j, pred)
			}
		}
		if maxChange <= imp.Tol*scale {
			converged = true
			break
		}
	}
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("IterativeImputer", imp.MaxIter,
			fmt.Sprintf("imputed values still changing above tol=%g", imp.Tol)))
	}

	slog.Debug("iterative imputation fitted",
		slog.String(mllog.ModelNameKey, "IterativeImputer"),
		slog.String(mllog.OperationKey, mllog.OperationFit),
		slog.Int(mllog.IterationKey, rounds),
		slog.Int64(mllog.RandomSeedKey, imp.RandomState),
		slog.Bool("converged", converged),
	)

	imp.SetFitted()

	// 学習済みモデルの適用として出力を作ることで、同じテーブルに対する
	// 後続のTransformがFitTransformと数値的に同一の行列を返すことを保証する
	return imp.Transform(X)
}

// Transform は学習済みの回帰モデルで新しいデータの欠損セル（NaN）を埋める
// 入力の列は学習時の列リストと同じ幅・順序でなければならない
func (imp *IterativeImputer) Transform(X *mat.Dense) (*mat.Dense, error) {
	if !imp.IsFitted() {
		return nil, errors.NewNotFittedError("IterativeImputer", "Transform")
	}

	r, c := X.Dims()
	if c != imp.nFeatures {
		return nil, errors.NewDimensionError("IterativeImputer.Transform", imp.nFeatures, c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError("IterativeImputer.Transform", "empty data", errors.ErrEmptyData)
	}

	missing := missingMask(X)
	work := mat.DenseCopyOf(X)
	fillWithMeans(work, missing, imp.means)

	scale := observedScale(X, missing)
	for iter := 0; iter < imp.MaxIter; iter++ {
		maxChange := 0.0
		for _, j := range imp.visitOrder {
			reg := imp.regressors[j]
			for i := 0; i < r; i++ {
				if !missing[i][j] {
					continue
				}
				pred := reg.predict(work, i)
				change := math.Abs(pred - work.At(i, j))
				if change > maxChange {
					maxChange = change
				}
				work.Set(i, j, pred)
			}
		}
		if maxChange <= imp.Tol*scale {
			break
		}
	}
	return work, nil
}

// missingMask はNaNセルのマスクを作る
func missingMask(X *mat.Dense) [][]bool {
	r, c := X.Dims()
	mask := make([][]bool, r)
	for i := 0; i < r; i++ {
		mask[i] = make([]bool, c)
		for j := 0; j < c; j++ {
			mask[i][j] = math.IsNaN(X.At(i, j))
		}
	}
	return mask
}

// observedMeans は列ごとの観測値の平均を計算する
// 観測値ゼロ件の列は平均が定義できないためUndefinedStatisticErrorを返す
func observedMeans(op string, X *mat.Dense, missing [][]bool, columns []string) ([]float64, error) {
	r, c := X.Dims()
	means := make([]float64, c)
	for j := 0; j < c; j++ {
		sum, n := 0.0, 0
		for i := 0; i < r; i++ {
			if missing[i][j] {
				continue
			}
			sum += X.At(i, j)
			n++
		}
		if n == 0 {
			return nil, errors.NewUndefinedStatisticError(op, columns[j], "mean")
		}
		means[j] = sum / float64(n)
	}
	return means, nil
}

// fillWithMeans は欠損セルを列平均で初期化する
func fillWithMeans(work *mat.Dense, missing [][]bool, means []float64) {
	r, c := work.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if missing[i][j] {
				work.Set(i, j, means[j])
			}
		}
	}
}

// observedScale は収束判定に使うスケール（観測値の最大絶対値）を返す
func observedScale(X *mat.Dense, missing [][]bool) float64 {
	r, c := X.Dims()
	scale := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if missing[i][j] {
				continue
			}
			if v := math.Abs(X.At(i, j)); v > scale {
				scale = v
			}
		}
	}
	if scale == 0 {
		scale = 1.0
	}
	return scale
}

// ridgeRegressor は1つの列を他の全列で条件付けたリッジ回帰モデル
type ridgeRegressor struct {
	target    int
	features  []int // target以外の列インデックス
	weights   []float64
	intercept float64
}

// fitRidge は対象列の観測行を使って条件付き回帰を学習する
// 正規方程式 (A^T A + λI) w = A^T y を解く。行列が特異な場合や
// 観測行が不足する場合は、切片のみ（対象列の平均）のモデルへフォールバックする
func fitRidge(work *mat.Dense, missing [][]bool, target int) *ridgeRegressor {
	r, c := work.Dims()

	features := make([]int, 0, c-1)
	for j := 0; j < c; j++ {
		if j != target {
			features = append(features, j)
		}
	}

	var rows []int
	for i := 0; i < r; i++ {
		if !missing[i][target] {
			rows = append(rows, i)
		}
	}

	reg := &ridgeRegressor{target: target, features: features}

	meanOnly := func() *ridgeRegressor {
		sum := 0.0
		for _, i := range rows {
			sum += work.At(i, target)
		}
		reg.weights = make([]float64, len(features))
		if len(rows) > 0 {
			reg.intercept = sum / float64(len(rows))
		}
		return reg
	}

	if len(rows) < 2 || len(features) == 0 {
		return meanOnly()
	}

	// 切片項のために A に 1 の列を追加
	n := len(rows)
	p := len(features) + 1
	A := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for k, i := range rows {
		A.Set(k, 0, 1.0)
		for fi, j := range features {
			A.Set(k, fi+1, work.At(i, j))
		}
		y.SetVec(k, work.At(i, target))
	}

	var AT mat.Dense
	AT.CloneFrom(A.T())

	var ATA mat.Dense
	ATA.Mul(&AT, A)
	for d := 0; d < p; d++ {
		ATA.Set(d, d, ATA.At(d, d)+ridgeLambda)
	}

	var ATAInv mat.Dense
	if err := ATAInv.Inverse(&ATA); err != nil {
		return meanOnly()
	}

	var ATy mat.VecDense
	ATy.MulVec(&AT, y)

	coef := mat.NewVecDense(p, nil)
	coef.MulVec(&ATAInv, &ATy)

	reg.intercept = coef.AtVec(0)
	reg.weights = make([]float64, len(features))
	for fi := range features {
		reg.weights[fi] = coef.AtVec(fi + 1)
	}
	return reg
}

// predict は現在の作業行列の行iに対する対象列の推定値を返す
func (reg *ridgeRegressor) predict(work *mat.Dense, i int) float64 {
	pred := reg.intercept
	for fi, j := range reg.features {
		pred += reg.weights[fi] * work.At(i, j)
	}
	return pred
}
