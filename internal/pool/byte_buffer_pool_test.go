package pool

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())

	capBefore := bb.Cap()
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.Grow(20)
		assert.Equal(t, DocumentBufferDefaultSize, bb.Cap())
	})

	t.Run("large buffer grows by quarter", func(t *testing.T) {
		size := 8 * DocumentBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(2)
		_, _ = bb.Write([]byte{1, 2})
		bb.Grow(DocumentBufferDefaultSize * 2)
		assert.Equal(t, []byte{1, 2}, bb.Bytes())
		assert.GreaterOrEqual(t, bb.Cap(), 2+DocumentBufferDefaultSize*2)
	})
}

func TestByteBuffer_Sized(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte{9, 9})

	b := bb.Sized(100)
	assert.Len(t, b, 100)
	assert.Equal(t, 100, bb.Len())

	b = bb.Sized(3)
	assert.Len(t, b, 3)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("data"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, "data", out.String())

	_, err = bb.WriteTo(shortWriter{})
	require.ErrorIs(t, err, io.ErrShortWrite)

	_, err = bb.WriteTo(failWriter{})
	require.EqualError(t, err, "boom")
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	big := NewByteBuffer(128)
	p.Put(big) // discarded

	got := p.Get()
	require.NotNil(t, got)
	assert.NotSame(t, big, got)

	p.Put(nil)
}

func TestDefaultPools(t *testing.T) {
	doc := GetDocumentBuffer()
	require.NotNil(t, doc)
	_, _ = doc.Write([]byte("x"))
	PutDocumentBuffer(doc)

	again := GetDocumentBuffer()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")
	PutDocumentBuffer(again)

	scratch := GetScratchBuffer()
	require.NotNil(t, scratch)
	assert.GreaterOrEqual(t, scratch.Cap(), 0)
	PutScratchBuffer(scratch)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 100 {
				bb := GetDocumentBuffer()
				_, _ = bb.Write([]byte{byte(i)})
				PutDocumentBuffer(bb)
			}
		}(i)
	}
	wg.Wait()
}
