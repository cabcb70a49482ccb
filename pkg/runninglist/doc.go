// Package runninglist keeps the running list of action items a user pulls
// out of distilled plans.
//
// The whole list is stored as one JSON array under a single key
// ("brainstormer-running-list" by default), either in memory or in a SQLite
// key/value table:
//
//	store, err := runninglist.Open(cfg.RunningList)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	list := runninglist.NewList(ctx, store)
//	item, err := list.Add(ctx, "Call mom")
//	_, err = list.Toggle(ctx, item.ID)
//
// Every mutation writes through to the store. Removing the last item, or
// calling Clear, deletes the key instead of storing an empty array.
package runninglist
