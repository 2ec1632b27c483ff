package paycode

import (
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	loanID := uuid.MustParse("6f1c2b1e-8d4a-4f7e-9c2a-1b3d5e7f9a0b")
	date := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "daily-loan-6f1c2b1e-8d4a-4f7e-9c2a-1b3d5e7f9a0b-20240209", Key(loanID, date))
	assert.Equal(t, Key(loanID, date), Key(loanID, date))
}

func TestQRGenerator_Generate(t *testing.T) {
	code, err := NewQRGenerator().Generate("daily-loan-1-20240209")
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(code, prefix))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(code, prefix))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestSnowflakeIDs_UniqueUnderConcurrency(t *testing.T) {
	ids, err := NewSnowflakeIDs(1)
	require.NoError(t, err)

	loanID := uuid.New()
	const workers, perWorker = 8, 500

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, ids.Next(loanID))
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	for id := range seen {
		assert.True(t, strings.HasPrefix(id, "TXN-"+loanID.String()+"-"))
		break
	}
}

func TestNewSnowflakeIDs_InvalidNode(t *testing.T) {
	_, err := NewSnowflakeIDs(4096)
	assert.Error(t, err)
}
