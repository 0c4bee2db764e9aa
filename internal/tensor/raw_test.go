package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 4}, Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(Shape{3, 4}) {
		t.Errorf("shape = %v, want [3 4]", raw.Shape())
	}
	if raw.NumElements() != 12 {
		t.Errorf("NumElements = %d, want 12", raw.NumElements())
	}
	if raw.ByteSize() != 48 {
		t.Errorf("ByteSize = %d, want 48", raw.ByteSize())
	}
	if got := raw.Strides(); got[0] != 4 || got[1] != 1 {
		t.Errorf("strides = %v, want [4 1]", got)
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{3, -1}, Float32); err == nil {
		t.Error("NewRaw with negative dimension should fail")
	}
}

func TestNewRawEmpty(t *testing.T) {
	raw, err := NewRaw(Shape{3, 0}, Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if raw.NumElements() != 0 {
		t.Errorf("NumElements = %d, want 0", raw.NumElements())
	}
	if got := raw.AsFloat32(); len(got) != 0 {
		t.Errorf("AsFloat32 = %v, want empty", got)
	}
	if raw.ID() != 0 {
		t.Error("empty buffer should have the zero storage identity")
	}
}

func TestNewRawScalar(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if raw.Rank() != 0 {
		t.Errorf("Rank = %d, want 0", raw.Rank())
	}
	if raw.NumElements() != 1 {
		t.Errorf("NumElements = %d, want 1", raw.NumElements())
	}
}

func TestCloneSharesBuffer(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float32)
	clone := raw.Clone()

	// Writes through one are visible through the other
	raw.AsFloat32()[2] = 42
	if got := clone.AsFloat32()[2]; got != 42 {
		t.Errorf("clone did not observe write: got %v, want 42", got)
	}

	if raw.ID() != clone.ID() {
		t.Error("clone should share storage identity with original")
	}
	if raw.IsUnique() {
		t.Error("buffer should not be unique after Clone")
	}
	clone.Release()
	if !raw.IsUnique() {
		t.Error("buffer should be unique after clone released")
	}
}

func TestReshape(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 6}, Int32)
	reshaped, err := raw.Reshape(Shape{3, 4})
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}

	if !reshaped.Shape().Equal(Shape{3, 4}) {
		t.Errorf("shape = %v, want [3 4]", reshaped.Shape())
	}
	if got := reshaped.Strides(); got[0] != 4 || got[1] != 1 {
		t.Errorf("strides = %v, want [4 1]", got)
	}
	if reshaped.ID() != raw.ID() {
		t.Error("reshape should share storage identity")
	}

	// Shared storage, regrouped dimensions
	raw.AsInt32()[5] = 7
	if got := reshaped.AsInt32()[5]; got != 7 {
		t.Errorf("reshaped did not observe write: got %v, want 7", got)
	}
}

func TestReshapeElementMismatch(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 6}, Int32)
	if _, err := raw.Reshape(Shape{5}); err == nil {
		t.Error("Reshape to different element count should fail")
	}
}

func TestStorageIDsDiffer(t *testing.T) {
	a, _ := NewRaw(Shape{4}, Float32)
	b, _ := NewRaw(Shape{4}, Float32)
	if a.ID() == b.ID() {
		t.Error("distinct buffers should have distinct storage identities")
	}
}
