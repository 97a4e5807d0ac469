package inputs

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidgets/pkg/schema"
	"github.com/goliatone/go-formwidgets/pkg/widget"
)

const hexColorPattern = "^#[0-9a-fA-F]{6}$"

func stringOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewStringSchema()))
}

// textOutput narrows the string schema with the instance's maxLength prop.
func textOutput() widget.Resolver {
	return func(d *widget.Descriptor) *schema.Schema {
		s := openapi3.NewStringSchema()
		if max := d.Int("maxLength", 0); max > 0 {
			s = s.WithMaxLength(int64(max))
		}
		return schema.New(s)
	}
}

// optionsOutput builds an enum over the instance's options prop. Without
// options the schema stays an open string.
func optionsOutput() widget.Resolver {
	return func(d *widget.Descriptor) *schema.Schema {
		s := openapi3.NewStringSchema()
		if opts := d.Strings("options"); len(opts) > 0 {
			values := make([]any, len(opts))
			for i, o := range opts {
				values[i] = o
			}
			s = s.WithEnum(values...)
		}
		return schema.New(s)
	}
}

// rangeOutput bounds the number schema with the instance's min and max
// props.
func rangeOutput() widget.Resolver {
	return func(d *widget.Descriptor) *schema.Schema {
		s := openapi3.NewFloat64Schema()
		if _, ok := d.Prop("min"); ok {
			s = s.WithMin(d.Float("min", 0))
		}
		if _, ok := d.Prop("max"); ok {
			s = s.WithMax(d.Float("max", 0))
		}
		return schema.New(s)
	}
}

// fieldsOutput builds a closed object keyed by the instance's fields prop.
// Without fields any string-valued object passes.
func fieldsOutput() widget.Resolver {
	return func(d *widget.Descriptor) *schema.Schema {
		fields := d.Strings("fields")
		if len(fields) == 0 {
			return schema.New(openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
		}
		s := openapi3.NewObjectSchema().WithoutAdditionalProperties()
		for _, f := range fields {
			s = s.WithProperty(f, openapi3.NewStringSchema())
		}
		return schema.New(s)
	}
}

func boolOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewBoolSchema()))
}

func stringListOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())))
}

// itemsListOutput narrows the list entries to the instance's items prop.
// Without items any string list passes.
func itemsListOutput() widget.Resolver {
	return func(d *widget.Descriptor) *schema.Schema {
		entry := openapi3.NewStringSchema()
		if items := d.Strings("items"); len(items) > 0 {
			values := make([]any, len(items))
			for i, item := range items {
				values[i] = item
			}
			entry = entry.WithEnum(values...)
		}
		return schema.New(openapi3.NewArraySchema().WithItems(entry))
	}
}

func hexColorOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewStringSchema().WithPattern(hexColorPattern)))
}

// timestampOutput is the click timestamp in Unix milliseconds, null before
// the first click.
func timestampOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewInt64Schema().WithNullable()))
}

func percentOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewFloat64Schema().WithMin(0).WithMax(100)))
}

// nothingOutput is the schema for widgets that never carry a value.
func nothingOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewSchema().WithNullable()))
}

// fileSchema describes a collected file: identity and location, never
// content.
func fileSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("size", openapi3.NewInt64Schema()).
		WithProperty("mime", openapi3.NewStringSchema()).
		WithoutAdditionalProperties()
}

func fileOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(fileSchema().WithNullable()))
}

func filesOutput() widget.Resolver {
	return widget.StaticResolver(schema.New(openapi3.NewArraySchema().WithItems(fileSchema())))
}
