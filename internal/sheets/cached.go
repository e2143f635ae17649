package sheets

import (
	"context"
	"time"

	"ourcash/internal/cache"
	"ourcash/internal/core"
	"ourcash/internal/importer"
)

// CachedSource is a read-through decorator over a Source. Each logical
// table is cached under its name; forceRefresh skips the lookup and
// overwrites the entry. This replaces the ambient module-level cache
// the old scripts shared: the cache is owned here, nowhere else.
type CachedSource struct {
	src Source

	rules    *cache.LRUCache[[]core.RecurrenceRule]
	balances *cache.LRUCache[[]core.AccountBalance]
	details  *cache.LRUCache[[]core.AccountDetail]
	report   *cache.LRUCache[[]core.TransactionReport]
	ledger   *cache.LRUCache[[]importer.Transaction]
}

// NewCachedSource wraps src with per-table caches expiring after ttl.
// The caches register with mgr for periodic cleanup when mgr is not nil.
func NewCachedSource(src Source, ttl time.Duration, mgr *cache.Manager) *CachedSource {
	c := &CachedSource{
		src:      src,
		rules:    cache.NewLRUCache[[]core.RecurrenceRule](1, ttl),
		balances: cache.NewLRUCache[[]core.AccountBalance](1, ttl),
		details:  cache.NewLRUCache[[]core.AccountDetail](1, ttl),
		report:   cache.NewLRUCache[[]core.TransactionReport](1, ttl),
		ledger:   cache.NewLRUCache[[]importer.Transaction](1, ttl),
	}
	if mgr != nil {
		mgr.Register(c.rules)
		mgr.Register(c.balances)
		mgr.Register(c.details)
		mgr.Register(c.report)
		mgr.Register(c.ledger)
	}
	return c
}

func (c *CachedSource) Rules(ctx context.Context, forceRefresh bool) ([]core.RecurrenceRule, error) {
	if !forceRefresh {
		if rows, ok := c.rules.Get(TableIncomeExpense); ok {
			return rows, nil
		}
	}
	rows, err := c.src.Rules(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	c.rules.Set(TableIncomeExpense, rows)
	return rows, nil
}

func (c *CachedSource) Balances(ctx context.Context, forceRefresh bool) ([]core.AccountBalance, error) {
	if !forceRefresh {
		if rows, ok := c.balances.Get(TableAccountBalances); ok {
			return rows, nil
		}
	}
	rows, err := c.src.Balances(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	c.balances.Set(TableAccountBalances, rows)
	return rows, nil
}

func (c *CachedSource) AccountDetails(ctx context.Context, forceRefresh bool) ([]core.AccountDetail, error) {
	if !forceRefresh {
		if rows, ok := c.details.Get(TableAccountDetails); ok {
			return rows, nil
		}
	}
	rows, err := c.src.AccountDetails(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	c.details.Set(TableAccountDetails, rows)
	return rows, nil
}

func (c *CachedSource) TransactionsReport(ctx context.Context, forceRefresh bool) ([]core.TransactionReport, error) {
	if !forceRefresh {
		if rows, ok := c.report.Get(TableTransactionsReport); ok {
			return rows, nil
		}
	}
	rows, err := c.src.TransactionsReport(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	c.report.Set(TableTransactionsReport, rows)
	return rows, nil
}

func (c *CachedSource) Transactions(ctx context.Context, forceRefresh bool) ([]importer.Transaction, error) {
	if !forceRefresh {
		if rows, ok := c.ledger.Get(TableTransactions); ok {
			return rows, nil
		}
	}
	rows, err := c.src.Transactions(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	c.ledger.Set(TableTransactions, rows)
	return rows, nil
}

var _ Source = (*CachedSource)(nil)
