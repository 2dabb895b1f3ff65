package main

import (
	"fmt"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/cache"
)

func requireStore(deps *Dependencies, command string) error {
	if deps.Store != nil {
		return nil
	}
	fmt.Fprintf(deps.Stderr, "error: %s needs an archive. Pass --db or set PAGEGRAPH_DB.\n", command)
	return pagegraph.Errorf(pagegraph.EINVALID, "%s requires --db", command)
}

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if err := requireStore(deps, "history"); err != nil {
		return err
	}

	filter := pagegraph.DocumentFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	docs, err := deps.Store.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived pages. Analyse a page with --db to archive it.")
		return nil
	}

	for _, d := range docs {
		title := d.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %6d words  %s  %s\n",
			d.CreatedAt.Local().Format("2006-01-02 15:04"), d.TotalWords, d.URL, title)
	}
	return nil
}

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if err := requireStore(deps, "forget"); err != nil {
		return err
	}

	key := cache.Key(c.URL, "")
	if err := deps.Store.DeleteDocument(deps.Ctx, key); err != nil {
		if pagegraph.ErrorCode(err) == pagegraph.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s is not archived. Use 'pagegraph history' to see archived pages.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		}
		return err
	}
	if deps.Cache != nil {
		deps.Cache.Delete(key)
	}

	fmt.Fprintf(deps.Stdout, "Forgot %s\n", key)
	return nil
}
