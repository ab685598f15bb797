// Package preprocessing は特徴量テーブルを固定幅の数値行列へ変換する前処理層を提供する
//
// 中核はTableProcessorで、fit/transform契約を一手に担う:
// カテゴリ列の検出、欠損値補完（単純戦略と多変量反復戦略）、
// 決定的なone-hot符号化、出力スキーマの記録と整列。
// FitTransformで記録された出力スキーマは以降不変であり、
// どのTransform出力も同じ幅・同じ列順序を持つことが保証される。
package preprocessing

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/core/model"
	"github.com/causalflow/causalgo/dataset"
	"github.com/causalflow/causalgo/pkg/errors"
	mllog "github.com/causalflow/causalgo/pkg/log"
)

// Strategy は欠損値補完の戦略
type Strategy int

const (
	// StrategySimple は列ごとに独立した統計量（数値列は平均、カテゴリ列は最頻値）で補完する
	StrategySimple Strategy = iota

	// StrategyIterative は他の全列で条件付けた回帰による多変量反復補完（MICE風）を行う
	StrategyIterative
)

// String は戦略の文字列表現を返す
func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "simple"
	case StrategyIterative:
		return "iterative"
	default:
		return "unknown"
	}
}

// Config はTableProcessorの設定
type Config struct {
	// Strategy は欠損値補完の戦略 (デフォルト: StrategySimple)
	Strategy Strategy

	// RandomState は反復補完の乱数シード
	// 隠れたグローバル状態を持たないよう、呼び出し側から明示的に渡す
	RandomState int64

	// MaxIter は反復補完の最大ラウンド数 (デフォルト: 10)
	MaxIter int

	// Tol は反復補完の収束許容値 (デフォルト: 1e-3)
	Tol float64
}

// TableProcessor は特徴量テーブルの前処理器
//
// 一度だけFitTransformを呼んで学習データの統計量と出力スキーマを確定し、
// 以降は任意の回数Transformを呼んで新しいテーブルを同じスキーマの行列へ変換する。
// 補完統計量・反復補完モデル・出力スキーマは学習後に不変であり、
// 再学習には新しいインスタンスを作成する
type TableProcessor struct {
	model.BaseEstimator

	cfg Config

	featureNamesIn []string
	inputKinds     map[string]dataset.Kind
	stats          map[string]columnStatistic
	encoder        *oneHotEncoder
	imputer        *IterativeImputer
	outputSchema   []string
}

var _ model.FrameTransformer = (*TableProcessor)(nil)

// NewTableProcessor は新しいTableProcessorを作成する
//
// 使用例:
//
//	proc := preprocessing.NewTableProcessor(preprocessing.Config{
//	    Strategy:    preprocessing.StrategyIterative,
//	    RandomState: 42,
//	})
//	X, err := proc.FitTransform(trainFrame)
//	XNew, err := proc.Transform(newFrame)
func NewTableProcessor(cfg Config) *TableProcessor {
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = defaultMaxIter
	}
	if cfg.Tol <= 0 {
		cfg.Tol = defaultTol
	}
	return &TableProcessor{cfg: cfg}
}

// NewSimpleTableProcessor は単純補完戦略のTableProcessorを作成する
func NewSimpleTableProcessor() *TableProcessor {
	return NewTableProcessor(Config{Strategy: StrategySimple})
}

// NewIterativeTableProcessor は反復補完戦略のTableProcessorを作成する
func NewIterativeTableProcessor(randomState int64) *TableProcessor {
	return NewTableProcessor(Config{Strategy: StrategyIterative, RandomState: randomState})
}

// Strategy は設定された補完戦略を返す
func (p *TableProcessor) Strategy() Strategy {
	return p.cfg.Strategy
}

// FeatureNamesIn は学習時に記録された入力列名を返す
func (p *TableProcessor) FeatureNamesIn() []string {
	out := make([]string, len(p.featureNamesIn))
	copy(out, p.featureNamesIn)
	return out
}

// FeatureNamesOut は学習時に確定した出力スキーマ（出力列名、順序付き）を返す
// 元の数値列名と、観測された `列=カテゴリ` の組み合わせごとの指示列名からなる
func (p *TableProcessor) FeatureNamesOut() []string {
	out := make([]string, len(p.outputSchema))
	copy(out, p.outputSchema)
	return out
}

// FitTransform は学習データで統計量・スキーマを記録し、同じデータを数値行列へ変換する
//
// このインスタンスに対して一度だけ呼び出せる。アルゴリズム:
//  1. 入力列名と型タグを入力スキーマとして記録する
//  2. 欠損値を補完する（単純戦略は平均/最頻値、反復戦略はカテゴリ補完の後に多変量モデル）
//  3. カテゴリ列をone-hot符号化する
//  4. 得られた列名リストを出力スキーマとして記録する
func (p *TableProcessor) FitTransform(f *dataset.Frame) (*mat.Dense, error) {
	if p.IsFitted() {
		return nil, errors.NewModelError("TableProcessor.FitTransform",
			"already fitted: create a new processor to refit", nil)
	}
	if f == nil || f.NumRows() == 0 {
		return nil, errors.NewModelError("TableProcessor.FitTransform", "empty data", errors.ErrEmptyData)
	}

	start := time.Now()

	p.featureNamesIn = f.ColumnNames()
	p.inputKinds = make(map[string]dataset.Kind, f.NumCols())
	missingCells, categoricalCols := 0, 0
	for i := 0; i < f.NumCols(); i++ {
		col := f.ColumnAt(i)
		p.inputKinds[col.Name()] = col.Kind()
		missingCells += col.MissingCount()
		if col.Kind() == dataset.Categorical {
			categoricalCols++
		}
	}

	includeNumeric := p.cfg.Strategy == StrategySimple
	stats, err := fitStatistics("TableProcessor.FitTransform", f, includeNumeric)
	if err != nil {
		return nil, err
	}
	p.stats = stats

	filled := applyStatistics(f, p.stats)

	p.encoder = newOneHotEncoder()
	p.encoder.fit(filled)
	tbl, _ := p.encoder.encode(filled)

	var X *mat.Dense
	if p.cfg.Strategy == StrategyIterative {
		// 数値列の欠損（NaN）は多変量モデルが埋める
		imp := NewIterativeImputer(p.cfg.RandomState)
		imp.MaxIter = p.cfg.MaxIter
		imp.Tol = p.cfg.Tol

		X, err = imp.FitTransform(tbl.toDense(), tbl.names)
		if err != nil {
			return nil, err
		}
		p.imputer = imp
		p.outputSchema = imp.Columns()
	} else {
		p.outputSchema = make([]string, len(tbl.names))
		copy(p.outputSchema, tbl.names)
		X = tbl.toDense()
	}
	p.SetFitted()

	slog.Debug("table processor fitted",
		slog.String(mllog.ModelNameKey, "TableProcessor"),
		slog.String(mllog.OperationKey, mllog.OperationFitTransform),
		slog.String(mllog.PhaseKey, mllog.PhasePreprocessing),
		slog.Int(mllog.SamplesKey, f.NumRows()),
		slog.Int(mllog.FeaturesKey, f.NumCols()),
		slog.Int(mllog.MissingCellsKey, missingCells),
		slog.Int(mllog.CategoricalColumnsKey, categoricalCols),
		slog.Int(mllog.OutputColumnsKey, len(p.outputSchema)),
		slog.Int64(mllog.DurationMsKey, time.Since(start).Milliseconds()),
	)
	return X, nil
}

// Transform は記録済みのスキーマに揃えて新しいテーブルを数値行列へ変換する
//
// FitTransformの後でのみ呼び出せる。入力に学習時の列が欠けている場合や
// 未知のカテゴリが含まれる場合もエラーにはせず、スキーマ整列で吸収する:
// 欠けた出力列はゼロ列として合成され、未知のカテゴリは列を増やさない。
// いずれの場合もSchemaDriftWarningが警告ハンドラへ通知される。
// 出力の列数・列順序は常にFeatureNamesOutと一致する
func (p *TableProcessor) Transform(f *dataset.Frame) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("TableProcessor", "Transform")
	}
	if f == nil || f.NumRows() == 0 {
		return nil, errors.NewModelError("TableProcessor.Transform", "empty data", errors.ErrEmptyData)
	}

	p.warnOnSchemaDrift(f)

	filled := applyStatistics(f, p.stats)
	tbl, unseen := p.encoder.encode(filled)

	if p.cfg.Strategy == StrategyIterative {
		// 反復補完モデルが学習した列集合に厳密に揃える
		// （欠けた列はゼロ列、残った数値ギャップはモデルが埋める）
		aligned, synthesized := alignColumns(p.imputer.Columns(), tbl)
		if len(synthesized) > 0 || len(unseen) > 0 {
			errors.Warn(errors.NewSchemaDriftWarning("TableProcessor.Transform", synthesized, unseen))
		}
		return p.imputer.Transform(aligned.toDense())
	}

	aligned, synthesized := alignColumns(p.outputSchema, tbl)
	if len(synthesized) > 0 || len(unseen) > 0 {
		errors.Warn(errors.NewSchemaDriftWarning("TableProcessor.Transform", synthesized, unseen))
	}
	return aligned.toDense(), nil
}

// warnOnSchemaDrift は入力スキーマと学習時スキーマの差分を警告として通知する
func (p *TableProcessor) warnOnSchemaDrift(f *dataset.Frame) {
	var missing, unknown []string
	for _, name := range p.featureNamesIn {
		if _, ok := f.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	for _, name := range f.ColumnNames() {
		if _, ok := p.inputKinds[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(missing) > 0 || len(unknown) > 0 {
		errors.Warn(errors.NewSchemaDriftWarning("TableProcessor.Transform", missing, unknown))
	}
}

// String はプロセッサの文字列表現を返す
func (p *TableProcessor) String() string {
	if !p.IsFitted() {
		return fmt.Sprintf("TableProcessor(strategy=%s)", p.cfg.Strategy)
	}
	return fmt.Sprintf("TableProcessor(strategy=%s, n_features_in=%d, n_features_out=%d)",
		p.cfg.Strategy, len(p.featureNamesIn), len(p.outputSchema))
}
