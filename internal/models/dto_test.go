package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSkillList(t *testing.T) {
	tests := []struct {
		name   string
		skills *string
		want   []string
	}{
		{"absent", nil, nil},
		{"single", strPtr("js"), []string{"js"}},
		{"comma separated", strPtr("js,node,mongo"), []string{"js", "node", "mongo"}},
		{"spaces trimmed", strPtr(" js , node , mongo "), []string{"js", "node", "mongo"}},
		{"empty string", strPtr(""), []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &ProfileInput{Skills: tt.skills}
			got := in.SkillList()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SkillList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileInputAbsentVsEmpty(t *testing.T) {
	var in ProfileInput
	if err := json.Unmarshal([]byte(`{"company":"","handle":"alice"}`), &in); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if in.Company == nil || *in.Company != "" {
		t.Error("Expected empty company to decode as present empty string")
	}
	if in.Handle == nil || *in.Handle != "alice" {
		t.Error("Expected handle to decode as present")
	}
	if in.Website != nil {
		t.Error("Expected omitted website to stay nil")
	}
}

func TestLikedBy(t *testing.T) {
	post := &Post{Likes: []Like{{UserID: "user-1"}}}

	if !post.LikedBy("user-1") {
		t.Error("Expected liker to be reported")
	}
	if post.LikedBy("user-2") {
		t.Error("Expected non-liker not to be reported")
	}
}

func strPtr(s string) *string {
	return &s
}
