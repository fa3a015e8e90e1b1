// Package history tracks build runs and record snapshots in a SQL store.
package history

import (
	"sync"

	"github.com/pamout/devlog/internal/contract"
)

// HistoryStoreManager owns the process-wide HistoryStore.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the HistoryStore, or nil before InitStores.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
