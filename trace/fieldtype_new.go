// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// NewInteger builds an Integer field type, validating that size and alignment
// are both positive and that alignment does not exceed size.
func NewInteger(sizeBits, alignment uint32, signed bool, base NumericBase,
	byteOrder ByteOrder, roles ...IntegerRole) (*Integer, error) {
	if sizeBits == 0 {
		return nil, fmt.Errorf("%w: integer size must be positive", ErrInvalidFieldType)
	}
	if alignment == 0 || alignment > sizeBits {
		return nil, fmt.Errorf("%w: integer alignment %d out of range (0, %d]",
			ErrInvalidFieldType, alignment, sizeBits)
	}
	return &Integer{
		SizeBits:  sizeBits,
		Alignment: alignment,
		Signed:    signed,
		Base:      base,
		ByteOrder: byteOrder,
		Roles:     append([]IntegerRole(nil), roles...),
	}, nil
}

// HasRole reports whether the integer carries the given role.
func (i *Integer) HasRole(role IntegerRole) bool {
	return hasRole(i.Roles, role)
}

func validateMappings(mappings []EnumMapping) error {
	if len(mappings) == 0 {
		return fmt.Errorf("%w: enum must have at least one mapping", ErrInvalidFieldType)
	}
	for _, m := range mappings {
		if m.Name == "" {
			return fmt.Errorf("%w: enum mapping name must not be empty", ErrInvalidFieldType)
		}
		if m.End < m.Begin {
			return fmt.Errorf("%w: enum mapping %q has end %d before begin %d",
				ErrInvalidFieldType, m.Name, m.End, m.Begin)
		}
	}
	return nil
}

// NewSignedEnum builds a SignedEnum, requiring the underlying Integer to be
// signed and at least one mapping to be present. Mapping order is preserved.
func NewSignedEnum(underlying Integer, mappings ...EnumMapping) (*SignedEnum, error) {
	if !underlying.Signed {
		return nil, fmt.Errorf("%w: SignedEnum requires a signed underlying integer",
			ErrInvalidFieldType)
	}
	if err := validateMappings(mappings); err != nil {
		return nil, err
	}
	return &SignedEnum{Underlying: underlying, Mappings: append([]EnumMapping(nil), mappings...)}, nil
}

// NewUnsignedEnum builds an UnsignedEnum, requiring the underlying Integer to be
// unsigned and at least one mapping to be present.
func NewUnsignedEnum(underlying Integer, mappings ...EnumMapping) (*UnsignedEnum, error) {
	if underlying.Signed {
		return nil, fmt.Errorf("%w: UnsignedEnum requires an unsigned underlying integer",
			ErrInvalidFieldType)
	}
	if err := validateMappings(mappings); err != nil {
		return nil, err
	}
	return &UnsignedEnum{Underlying: underlying, Mappings: append([]EnumMapping(nil), mappings...)}, nil
}

// NewStaticArray builds a StaticArray, requiring a non-nil element type.
func NewStaticArray(element FieldType, length, alignment uint32) (*StaticArray, error) {
	if element == nil {
		return nil, fmt.Errorf("%w: array element type must not be nil", ErrInvalidFieldType)
	}
	return &StaticArray{Element: element, Length: length, Alignment: alignment}, nil
}

// NewDynamicArray builds a DynamicArray, validating the element type and the
// length-field location path.
func NewDynamicArray(element FieldType, lengthLocation FieldLocation, alignment uint32,
) (*DynamicArray, error) {
	if element == nil {
		return nil, fmt.Errorf("%w: array element type must not be nil", ErrInvalidFieldType)
	}
	if err := lengthLocation.validate(); err != nil {
		return nil, err
	}
	return &DynamicArray{
		Element:        element,
		LengthLocation: append(FieldLocation(nil), lengthLocation...),
		Alignment:      alignment,
	}, nil
}

// NewVariant builds a Variant, validating the tag location and that every
// choice names a non-empty tag and a non-nil type.
func NewVariant(tagLocation FieldLocation, signed bool, alignment uint32,
	choices ...VariantChoice) (*Variant, error) {
	if err := tagLocation.validate(); err != nil {
		return nil, err
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: variant must have at least one choice", ErrInvalidFieldType)
	}
	for _, c := range choices {
		if c.TagName == "" {
			return nil, fmt.Errorf("%w: variant choice tag name must not be empty",
				ErrInvalidFieldType)
		}
		if c.Type == nil {
			return nil, fmt.Errorf("%w: variant choice %q has a nil type",
				ErrInvalidFieldType, c.TagName)
		}
	}
	return &Variant{
		TagLocation: append(FieldLocation(nil), tagLocation...),
		Signed:      signed,
		Choices:     append([]VariantChoice(nil), choices...),
		Alignment:   alignment,
	}, nil
}

// NewStructure builds a Structure, rejecting duplicate field names since TSDL
// identifiers within one scope must be distinct.
func NewStructure(fields ...Field) (*Structure, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: structure field name must not be empty",
				ErrInvalidFieldType)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate structure field name %q",
				ErrInvalidFieldType, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return &Structure{Fields: append([]Field(nil), fields...)}, nil
}
