package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/dataset"
)

// FrameTransformer は名前付き列テーブルを固定幅の数値行列へ変換するインターフェース
// FitTransformは一度だけ呼ばれ、以降のTransformは学習時に記録した出力スキーマに揃えられる
type FrameTransformer interface {
	// FitTransform は学習データで統計量・スキーマを記録し、同じデータを変換する
	FitTransform(f *dataset.Frame) (*mat.Dense, error)

	// Transform は記録済みのスキーマに揃えてデータを変換する
	Transform(f *dataset.Frame) (*mat.Dense, error)

	// FeatureNamesOut は学習時に確定した出力列名を返す
	FeatureNamesOut() []string
}
