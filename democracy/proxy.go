package democracy

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/proxies"
)

// SetProxy allows proxy to vote on behalf of the stash. A proxy votes for one stash only.
func (e *Engine) SetProxy(ctx context.Context, stash, proxy types.Address) error {
	return e.mutate(ctx, func(u *update) error {
		err := proxies.Add(u.tx, proxy, stash)
		if errors.Is(err, sql.ErrObjectExists) {
			return fmt.Errorf("%w: %s", ErrAlreadyProxy, proxy)
		} else if err != nil {
			return err
		}
		u.emit(events.ProxySet{Proxy: proxy, Stash: stash})
		return nil
	})
}

// ResignProxy is called by the proxy itself.
func (e *Engine) ResignProxy(ctx context.Context, proxy types.Address) error {
	return e.mutate(ctx, func(u *update) error {
		stash, err := proxies.Get(u.tx, proxy)
		if err != nil {
			return notFound(err, ErrNotProxy)
		}
		if err := proxies.Delete(u.tx, proxy); err != nil {
			return err
		}
		u.emit(events.ProxyRemoved{Proxy: proxy, Stash: stash})
		return nil
	})
}

// ClearProxy is called by the stash to remove its proxy.
func (e *Engine) ClearProxy(ctx context.Context, stash, proxy types.Address) error {
	return e.mutate(ctx, func(u *update) error {
		actual, err := proxies.Get(u.tx, proxy)
		if err != nil {
			return notFound(err, ErrNotProxy)
		}
		if actual != stash {
			return fmt.Errorf("%w: %s votes for %s", ErrWrongProxy, proxy, actual)
		}
		if err := proxies.Delete(u.tx, proxy); err != nil {
			return err
		}
		u.emit(events.ProxyRemoved{Proxy: proxy, Stash: stash})
		return nil
	})
}
