package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name" validate:"required"`
	Status string   `json:"status" validate:"oneof='On Progress' Finished"`
	Result string   `json:"result" validate:"required_if=Status Finished"`
	Links  []string `json:"links" validate:"dive,http_url"`
	Faucet string   `json:"faucet_link" validate:"omitempty,http_url"`
}

func TestValidateStruct(t *testing.T) {
	fields, err := ValidateStruct(sample{Name: "x", Status: "On Progress", Links: []string{"https://a.io"}})
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ValidateStruct(sample{
		Status: "Finished",
		Links:  []string{"https://a.io", "ftp://b.io"},
		Faucet: "javascript:alert(1)",
	})
	require.NoError(t, err)
	assert.Equal(t, FieldErrors{
		"name":        "required",
		"result":      "required_if",
		"links[1]":    "http_url",
		"faucet_link": "http_url",
	}, fields)
}
