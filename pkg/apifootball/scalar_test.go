package apifootball

import (
	"encoding/json"
	"testing"
)

func TestInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Int
		expectErr bool
	}{
		{name: "number", input: `10`, want: Int{Value: 10, Valid: true}},
		{name: "numeric string", input: `"900"`, want: Int{Value: 900, Valid: true}},
		{name: "padded string", input: `" 3 "`, want: Int{Value: 3, Valid: true}},
		{name: "zero is still present", input: `0`, want: Int{Value: 0, Valid: true}},
		{name: "null", input: `null`, want: Int{}},
		{name: "empty string", input: `""`, want: Int{}},
		{name: "fractional number truncates", input: `7.9`, want: Int{Value: 7, Valid: true}},
		{name: "negative fractional number", input: `-2.5`, want: Int{Value: -2, Valid: true}},
		{name: "fractional string", input: `"7.5"`, expectErr: true},
		{name: "oversized string", input: `"99999999999999999999"`, expectErr: true},
		{name: "oversized number", input: `1e300`, expectErr: true},
		{name: "oversized negative number", input: `-1e19`, expectErr: true},
		{name: "exponent within range", input: `1e3`, want: Int{Value: 1000, Valid: true}},
		{name: "word", input: `"ten"`, expectErr: true},
		{name: "object", input: `{}`, expectErr: true},
		{name: "bool", input: `true`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Int
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt_AbsentField(t *testing.T) {
	var v struct {
		Total Int `json:"total"`
	}
	if err := json.Unmarshal([]byte(`{}`), &v); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if v.Total.Valid || v.Total.Get() != 0 {
		t.Errorf("absent field = %+v, want invalid zero", v.Total)
	}
}

func TestFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Float
		expectErr bool
	}{
		{name: "string rating", input: `"7.266667"`, want: Float{Value: 7.266667, Valid: true}},
		{name: "number", input: `6.5`, want: Float{Value: 6.5, Valid: true}},
		{name: "integer number", input: `7`, want: Float{Value: 7, Valid: true}},
		{name: "null", input: `null`, want: Float{}},
		{name: "empty string", input: `""`, want: Float{}},
		{name: "word", input: `"n/a"`, expectErr: true},
		{name: "array", input: `[1]`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Float
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  String
	}{
		{input: `"Midfielder"`, want: String{Value: "Midfielder", Valid: true}},
		{input: `42`, want: String{Value: "42", Valid: true}},
		{input: `null`, want: String{}},
		{input: `""`, want: String{}},
	}

	for _, tt := range tests {
		var got String
		if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestScalars_MarshalNull(t *testing.T) {
	out, err := json.Marshal(struct {
		A Int
		B Float
		C String
	}{})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != `{"A":null,"B":null,"C":null}` {
		t.Errorf("Marshal = %s", out)
	}
}
