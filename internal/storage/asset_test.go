package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type testSpec struct {
	valid bool
}

func (s *testSpec) Validate() error {
	if !s.valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset   Asset[*testSpec]
		expErrs []string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{Version: 1, ID: "iron-pagoda", Spec: &testSpec{valid: true}},
		},
		"digits and hyphens": {
			asset: Asset[*testSpec]{Version: 1, ID: "war-1127", Spec: &testSpec{valid: true}},
		},
		"version not set": {
			asset:   Asset[*testSpec]{ID: "seal", Spec: &testSpec{valid: true}},
			expErrs: []string{"version must be set"},
		},
		"empty id": {
			asset:   Asset[*testSpec]{Version: 1, Spec: &testSpec{valid: true}},
			expErrs: []string{"id must be set"},
		},
		"upper case id": {
			asset:   Asset[*testSpec]{Version: 1, ID: "Seal", Spec: &testSpec{valid: true}},
			expErrs: []string{`id "Seal" must be lowercase`},
		},
		"underscore id": {
			asset:   Asset[*testSpec]{Version: 1, ID: "tiger_seal", Spec: &testSpec{valid: true}},
			expErrs: []string{"must be lowercase letters, digits and hyphens"},
		},
		"leading hyphen": {
			asset:   Asset[*testSpec]{Version: 1, ID: "-seal", Spec: &testSpec{valid: true}},
			expErrs: []string{"must be lowercase letters, digits and hyphens"},
		},
		"missing spec": {
			asset:   Asset[*testSpec]{Version: 1, ID: "seal"},
			expErrs: []string{"spec must be set"},
		},
		"invalid spec": {
			asset:   Asset[*testSpec]{Version: 1, ID: "seal", Spec: &testSpec{}},
			expErrs: []string{"spec is invalid"},
		},
		"multiple errors": {
			asset: Asset[*testSpec]{Spec: &testSpec{}},
			expErrs: []string{
				"version must be set",
				"id must be set",
				"spec is invalid",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected errors %v, got nil", tt.expErrs)
				return
			}

			for _, e := range tt.expErrs {
				if !strings.Contains(err.Error(), e) {
					t.Errorf("error %q does not contain %q", err.Error(), e)
				}
			}
		})
	}
}

func TestRef_JSON(t *testing.T) {
	var holder struct {
		Board Ref[*testSpec] `json:"board"`
	}

	if err := json.Unmarshal([]byte(`{"board":"central-plains"}`), &holder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "key", holder.Board.Key(), "central-plains")

	out, err := json.Marshal(holder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "round trip", string(out), `{"board":"central-plains"}`)
}

func TestRef_Validate(t *testing.T) {
	var empty Ref[*testSpec]
	testutil.AssertErrorContains(t, empty.Validate(), "testSpec reference is required")

	set := NewRef[*testSpec]("any")
	if err := set.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRef_Resolve(t *testing.T) {
	store, err := NewFileStore[*testSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.records["found"] = &testSpec{valid: true}

	tests := map[string]struct {
		key    string
		expErr string
	}{
		"found": {
			key: "found",
		},
		"missing": {
			key:    "lost",
			expErr: `testSpec "lost" not found`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ref := NewRef[*testSpec](tt.key)
			err := ref.Resolve(store)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "resolved", ref.Value() == store.records["found"], true)
		})
	}
}
