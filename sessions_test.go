package calc_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

func TestSessions(t *testing.T) {
	s := calc.NewSessions(calc.Exact(false))
	a, b := s.Open(), s.Open()
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())

	r, err := s.Evaluate(a, "X := 1/4")
	require.NoError(t, err)
	assert.Equal(t, "0.25", r)
	_, err = s.Evaluate(b, "X")
	var le *calc.LookupError
	require.True(t, errors.As(err, &le), "wrong error %#v", err)

	v, err := s.Lookup(a, "X")
	require.NoError(t, err)
	assert.NotNil(t, v)
	v, err = s.Lookup(b, "X")
	require.NoError(t, err)
	assert.Nil(t, v)

	s.Close(a)
	assert.Equal(t, 1, s.Len())
	_, err = s.Evaluate(a, "1")
	require.True(t, errors.As(err, &le), "wrong error %#v", err)
	assert.Equal(t, "session", le.Kind)
	_, err = s.Lookup(uuid.New(), "ans")
	assert.Error(t, err)
}

func TestSessionsConcurrent(t *testing.T) {
	s := calc.NewSessions()
	id := s.Open()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if _, err := s.Evaluate(id, "ans + 1"); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	r, err := s.Evaluate(id, "ans")
	require.NoError(t, err)
	assert.Equal(t, "160", r)
}
