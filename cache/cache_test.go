package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mregexp"
)

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{MaxPatterns: 0})
	require.Error(t, err)
}

func TestCompileReusesPattern(t *testing.T) {
	c, err := New(DefaultOptions())
	require.NoError(t, err)
	defer c.Close()

	first, err := c.Compile("ä+(b)")
	require.NoError(t, err)
	c.Wait()

	second, err := c.Compile("ä+(b)")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Greater(t, c.HitRatio(), 0.0)

	m, err := second.FindFirst("xääb")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, mregexp.Span{Begin: 1, End: 6}, m.Span)
}

func TestCompileErrorsAreNotCached(t *testing.T) {
	c, err := New(DefaultOptions())
	require.NoError(t, err)
	defer c.Close()

	for i := 0; i < 2; i++ {
		re, err := c.Compile("a{3,1}")
		require.Error(t, err)
		assert.Nil(t, re)
		assert.Equal(t, mregexp.InvalidComplexQuant, mregexp.KindOf(err))
		assert.Contains(t, err.Error(), `while compiling "a{3,1}"`)
		c.Wait()
	}
}

func TestCompileUsesConfig(t *testing.T) {
	opts := DefaultOptions()
	opts.Config.MaxNodes = 2
	c, err := New(opts)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Compile("abc")
	assert.Equal(t, mregexp.FailedAlloc, mregexp.KindOf(err))
}

func TestConcurrentCompile(t *testing.T) {
	c, err := New(DefaultOptions())
	require.NoError(t, err)
	defer c.Close()

	patterns := []string{"a+", "b|c", `\d{2}`, "(x)(y)"}
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				re, err := c.Compile(patterns[i%len(patterns)])
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, patterns[i%len(patterns)], re.String())
			}
		}()
	}
	wg.Wait()
}
