package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pets = `
openapi: 3.1.0
info: {title: Pets, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      type: object
      required: [petType]
      properties:
        petType: {type: string}
      discriminator:
        propertyName: petType
        mapping:
          dog: "#/components/schemas/Dog"
    Dog:
      allOf:
        - $ref: "#/components/schemas/Pet"
        - type: object
          properties:
            bark: {type: boolean}
    Cat:
      allOf:
        - $ref: "#/components/schemas/Pet"
        - type: object
          properties:
            meow: {type: boolean}
    Kitten:
      allOf:
        - $ref: "#/components/schemas/Cat"
    Shape:
      oneOf:
        - $ref: "#/components/schemas/Circle"
        - $ref: "#/components/schemas/Square"
      discriminator:
        propertyName: kind
        mapping:
          round: Circle
          circle: "#/components/schemas/Circle"
    Circle:
      type: object
      required: [kind]
      properties:
        kind: {type: string}
        radius: {type: number}
    Square:
      type: object
      properties:
        kind: {type: string}
        side: {type: number}
`

func TestScanDiscriminators(t *testing.T) {
	ctx := NewContext(mustParse(t, pets), Options{})
	d := ctx.Discriminators()

	root, ok := d.Root("#/components/schemas/Pet")
	require.True(t, ok)
	assert.Equal(t, "petType", root.PropertyName)

	tests := []struct {
		path   string
		values []string
		mapped bool
	}{
		{"#/components/schemas/Dog", []string{"dog"}, true},
		{"#/components/schemas/Cat", []string{"Cat"}, false},
		{"#/components/schemas/Kitten", []string{"Kitten"}, false},
		{"#/components/schemas/Circle", []string{"round", "circle"}, true},
		{"#/components/schemas/Square", []string{"Square"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			info, ok := d.Variant(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.values, info.Values)
			assert.Equal(t, tt.mapped, info.Mapped)
		})
	}

	_, ok = d.Variant("#/components/schemas/Pet")
	assert.False(t, ok)
}

func TestTransform_Discriminators(t *testing.T) {
	out := render(t, pets, Options{})

	// the root keeps its own shape
	assert.Contains(t, out, "        Pet: {\n            petType: string;\n        };")
	// variants get their tag and the root minus the tag property
	assert.Contains(t, out, "        Dog: {\n            petType: \"dog\";\n        } & Omit<components[\"schemas\"][\"Pet\"], \"petType\"> & {\n            bark?: boolean;\n        };")
	assert.Contains(t, out, "        Cat: {\n            petType: \"Cat\";\n        } & Omit<components[\"schemas\"][\"Pet\"], \"petType\">")
	assert.Contains(t, out, "        Kitten: {\n            petType: \"Kitten\";\n        } & Omit<components[\"schemas\"][\"Cat\"], \"petType\">;")
	// a oneOf root is the union of its members
	assert.Contains(t, out, "        Shape: components[\"schemas\"][\"Circle\"] | components[\"schemas\"][\"Square\"];")
	assert.Contains(t, out, "        Circle: {\n            kind: \"round\" | \"circle\";\n            radius?: number;\n        };")
	assert.Contains(t, out, "        Square: {\n            kind: \"Square\";\n            side?: number;\n        };")
}
