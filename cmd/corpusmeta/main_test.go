package main

import (
	"fmt"
	"testing"
)

func TestStoreFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"registry.json", "*registry.FileStore"},
		{"registry.json.xz", "*registry.FileStore"},
		{"registry.db", "*registry.SQLStore"},
		{"registry.sqlite", "*registry.SQLStore"},
	}

	for _, tt := range tests {
		if got := fmt.Sprintf("%T", storeFor(tt.path)); got != tt.want {
			t.Errorf("storeFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
