package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionSet(t *testing.T) {
	set := NewSubmissionSet(3)

	assert.True(t, set.Add("alice"))
	assert.True(t, set.Add("bob"))
	assert.False(t, set.Add("alice"), "duplicate submitter is not counted twice")
	assert.Equal(t, 2, set.Count())
	assert.False(t, set.Complete())

	assert.True(t, set.Add("carol"))
	assert.True(t, set.Complete())
	assert.Equal(t, []string{"alice", "bob", "carol"}, set.Submitters())
}

func TestSubmissionSet_NoExpectationNeverCompletes(t *testing.T) {
	set := NewSubmissionSet(0)
	set.Add("alice")
	assert.False(t, set.Complete())

	set.SetExpected(1)
	assert.True(t, set.Complete())
}

func TestSubmissionSet_ShrinkingExpectation(t *testing.T) {
	set := NewSubmissionSet(4)
	set.Add("alice")
	set.Add("bob")
	assert.False(t, set.Complete())

	set.SetExpected(2)
	assert.True(t, set.Complete())
	assert.True(t, set.Has("bob"))
	assert.False(t, set.Has("dave"))
}
