// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafmark/leafmark/pkg/slug"
)

/*
TestFrom verifies slug generation across common book-title shapes.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Dune", "dune"},
		{"spaces", "The Name of the Wind", "the-name-of-the-wind"},
		{"accents", "Cien años de soledad", "cien-anos-de-soledad"},
		{"punctuation", "Do Androids Dream of Electric Sheep?", "do-androids-dream-of-electric-sheep"},
		{"multi_space", "A  Tale   of Two Cities", "a-tale-of-two-cities"},
		{"leading_trailing", "  1984  ", "1984"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
