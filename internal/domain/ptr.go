package domain

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Int16PtrToIntPtr converts a nullable SMALLINT column to *int.
func Int16PtrToIntPtr(v *int16) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

// IntPtrToInt16Ptr converts *int (domain) to a nullable SMALLINT value.
func IntPtrToInt16Ptr(v *int) *int16 {
	if v == nil {
		return nil
	}
	i := int16(*v)
	return &i
}
