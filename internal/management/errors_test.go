package management

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic(t *testing.T) {
	apiErr := &Error{Kind: KindAPI, Op: "list webproperties", Status: 403, Reason: "insufficient permission"}
	msg, ok := Diagnostic(fmt.Errorf("traverse: %w", apiErr))
	assert.True(t, ok)
	assert.Equal(t, "Arg, there was an API error : 403 : insufficient permission", msg)

	queryErr := &Error{Kind: KindQuery, Op: "list goals", Err: errors.New("profileId is required")}
	msg, ok = Diagnostic(queryErr)
	assert.True(t, ok)
	assert.Equal(t, "There was an error in constructing your query : list goals: profileId is required", msg)

	credErr := &Error{Kind: KindCredential, Op: "list accounts", Err: errors.New("invalid_grant")}
	msg, ok = Diagnostic(credErr)
	assert.True(t, ok)
	assert.Contains(t, msg, "revoked or expired")

	_, ok = Diagnostic(errors.New("plain"))
	assert.False(t, ok)
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", &Error{Kind: KindCredential}))
	assert.True(t, ok)
	assert.Equal(t, KindCredential, kind)
	assert.Equal(t, "credential", kind.String())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
