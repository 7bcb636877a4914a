package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowx-relief/internal/domain"
)

func TestStruct_CreateRequest(t *testing.T) {
	v := New()

	ok := domain.CreateRequestInput{
		Kind:           domain.KindVictim,
		Title:          "Water entered the house",
		Message:        "Need dry rations",
		EmergencyLevel: domain.EmergencyHigh,
	}
	assert.NoError(t, v.Struct(ok))

	bad := ok
	bad.EmergencyLevel = "urgent"
	err := v.Struct(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "emergency_level", ve.Fields[0].Field)
	assert.Equal(t, "must be one of low, medium, high, critical", ve.Fields[0].Message)
}

func TestStruct_Phone(t *testing.T) {
	v := New()
	base := domain.RegisterInput{Email: "a@example.org", Password: "password123", FullName: "Kamala"}

	for _, phone := range []string{"", "0771234567", "+94771234567", "077 123 4567"} {
		in := base
		in.Phone = phone
		assert.NoError(t, v.Struct(in), phone)
	}
	for _, phone := range []string{"12345", "+9477123456", "07712345678"} {
		in := base
		in.Phone = phone
		err := v.Struct(in)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), phone)
		assert.Equal(t, "phone", ve.Fields[0].Field)
	}
}

func TestStruct_MultipleFields(t *testing.T) {
	err := New().Struct(domain.RegisterInput{Email: "not-an-email", Password: "short"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
	assert.Equal(t, "is required", fields["full_name"])
}
