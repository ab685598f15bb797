// Package causal connects preprocessed feature matrices to an opaque
// causal-effect estimation engine.
//
// The estimation algorithms themselves (causal forest, linear estimator,
// validation folds) live outside this module; this package defines the
// in-process contract they are invoked through, and the orchestration that
// sequences row alignment, preprocessing and engine invocation.
package causal

import (
	"encoding/json"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/causalflow/causalgo/pkg/errors"
)

// Estimation methods understood by conforming engines.
const (
	MethodForest = "forest"
	MethodLinear = "linear"
)

// Engine is the native estimation engine collaborator. It consumes a fully
// numeric feature matrix, treatment and outcome vectors, a method name and
// the output feature names, and produces a fitted effect model.
type Engine interface {
	CreateModel(x *mat.Dense, treatment, outcome []float64, method string, featureNames []string) (EffectModel, error)
}

// EffectModel is a fitted estimator owned by an Engine.
type EffectModel interface {
	// EstimateEffects computes per-row effect estimates for a feature
	// matrix with the same width the model was created with.
	EstimateEffects(x *mat.Dense) (*InferenceResult, error)

	// Validate runs the engine's robustness checks.
	Validate(nFolds int, timeSeries bool) (*ValidationReport, error)

	// Visualize produces a plot payload of the given type, e.g.
	// "importance" or "graph".
	Visualize(plotType string) (*VisualPayload, error)
}

// InferenceResult holds the engine's effect estimates for one batch.
type InferenceResult struct {
	MeanEffect          float64
	Predictions         []float64
	ConfidenceIntervals [][2]float64
	FeatureImportance   []float64
	FeatureNames        []string
}

// Summary renders a human-readable report of the estimated effects.
func (r *InferenceResult) Summary() string {
	var b strings.Builder
	b.WriteString("+----------------------------+----------------+\n")
	b.WriteString("| Metric                     | Value          |\n")
	b.WriteString("+----------------------------+----------------+\n")
	fmt.Fprintf(&b, "| Average Treatment Effect   | %14.4f |\n", r.MeanEffect)
	fmt.Fprintf(&b, "| Number of Observations     | %14d |\n", len(r.Predictions))
	b.WriteString("+----------------------------+----------------+\n")

	if len(r.FeatureImportance) > 0 {
		b.WriteString("\n[Feature Importance]\n")
		for i, imp := range r.FeatureImportance {
			name := fmt.Sprintf("Feature %d", i)
			if i < len(r.FeatureNames) {
				name = r.FeatureNames[i]
			}
			fmt.Fprintf(&b, "%-20s: %.4f\n", name, imp)
		}
	}

	b.WriteString("\n[Interpretation]\n")
	switch {
	case r.MeanEffect > 0:
		fmt.Fprintf(&b, "The treatment has a POSITIVE average effect of %.4f.\n", r.MeanEffect)
	case r.MeanEffect < 0:
		fmt.Fprintf(&b, "The treatment has a NEGATIVE average effect of %.4f.\n", r.MeanEffect)
	default:
		b.WriteString("The treatment has no measurable average effect.\n")
	}
	return b.String()
}

// ValidationReport is the engine's verdict on the causal structure.
type ValidationReport struct {
	IsRobust bool
	Message  string
}

// VisualPayload is an engine-produced visualization payload. Rendering is
// out of scope here; payloads are opaque JSON handed to a frontend.
type VisualPayload struct {
	VisualType string          `json:"visual_type"`
	Data       json.RawMessage `json:"data"`
}

// FeatureImportanceData is the payload body for importance plots.
type FeatureImportanceData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// NodeInfo is a node of a causal graph payload. Role is one of "treatment",
// "outcome", "confounder" or "feature".
type NodeInfo struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// EdgeInfo is a weighted edge of a causal graph payload.
type EdgeInfo struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// CausalGraphData is the payload body for graph plots.
type CausalGraphData struct {
	Nodes []NodeInfo `json:"nodes"`
	Edges []EdgeInfo `json:"edges"`
}

// NewFeatureImportancePayload builds an importance payload from labeled values.
func NewFeatureImportancePayload(labels []string, values []float64) (*VisualPayload, error) {
	data, err := json.Marshal(FeatureImportanceData{Labels: labels, Values: values})
	if err != nil {
		return nil, errors.Wrap(err, "marshal feature importance payload")
	}
	return &VisualPayload{VisualType: "feature_importance", Data: data}, nil
}

// NewCausalGraphPayload builds a graph payload from nodes and edges.
func NewCausalGraphPayload(nodes []NodeInfo, edges []EdgeInfo) (*VisualPayload, error) {
	data, err := json.Marshal(CausalGraphData{Nodes: nodes, Edges: edges})
	if err != nil {
		return nil, errors.Wrap(err, "marshal causal graph payload")
	}
	return &VisualPayload{VisualType: "causal_graph", Data: data}, nil
}

// ToJSON renders the payload as indented JSON.
func (v *VisualPayload) ToJSON() (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal visual payload")
	}
	return string(out), nil
}

// ToVisualTag wraps the payload in the fenced block understood by
// causal-plot frontends.
func (v *VisualPayload) ToVisualTag() (string, error) {
	body, err := v.ToJSON()
	if err != nil {
		return "", err
	}
	return "```json:causal-plot\n" + body + "\n```", nil
}
