package formflow

import (
	"context"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
)

// InputType tells the presentation layer which affordance to render. The
// controller itself never inspects it.
type InputType int

const (
	InputText InputType = iota
	InputNumber
	InputDateTime
	InputTextArea
)

// FieldSpec describes one input of a form kind. Length and range limits are
// enforced by input affordances; the server re-validates authoritatively.
type FieldSpec struct {
	Name      string
	Label     string
	Type      InputType
	Required  bool
	MaxLength int
}

// ParentOption is one entry of the candidate-parent selector.
type ParentOption struct {
	ID    int64
	Label string
}

// Values holds raw operator input keyed by field name. Values are kept as
// entered until normalization, so a failed submit loses nothing.
type Values map[string]string

// Kind is the explicit per-kind configuration the generic controller is
// parameterized by: field list, validators, normalizers. No runtime
// introspection of entity shapes.
type Kind struct {
	// Name is the singular resource name, used in messages.
	Name string

	// ParentField is the submitted name of the parent id ("farm_id",
	// "field_id"), empty for root resources.
	ParentField string

	// ParentNoun is the plural parent name for degradation notices
	// ("farms", "fields").
	ParentNoun string

	// Fields lists the kind's inputs in display order.
	Fields []FieldSpec

	// LoadParentOptions fetches the unfiltered candidate-parent collection.
	// Nil when the kind has no parent selector.
	LoadParentOptions func(ctx context.Context) ([]ParentOption, error)

	// Validate applies kind-specific pre-submit checks beyond the shared
	// parent check. Nil when there are none.
	Validate func(v Values) *apperrors.ValidationError

	// Normalize builds the typed record submitted through the gateway.
	// Optional inputs left empty must be omitted from the record, never
	// carried as zero values or empty strings.
	Normalize func(v Values, parentID int64) (any, error)

	// Seed converts an existing entity into form values for edit mode,
	// returning the immutable parent id. Absent optionals become empty
	// inputs.
	Seed func(entity any) (Values, int64, error)
}

func (k Kind) needsReferenceData() bool {
	return k.LoadParentOptions != nil
}
