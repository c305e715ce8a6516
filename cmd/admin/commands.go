package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"fairprice/backend/internal/analysis"
	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/config"
	"fairprice/backend/internal/export"
	"fairprice/backend/internal/models"
	"fairprice/backend/internal/report"
)

var errUsage = errors.New("invalid arguments\n" + usage)

type catalogSource interface {
	Get() ([]models.Business, error)
}

type admin struct {
	out     io.Writer
	catalog catalogSource
	reports *report.Service
	now     func() time.Time
}

func (a *admin) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "districts":
		return a.districts()
	case "stats":
		return a.stats(ctx, optional(args, 1))
	case "export":
		if len(args) < 2 {
			return errUsage
		}
		return a.export(args[1], optional(args, 2))
	case "reports":
		if len(args) != 2 {
			return errUsage
		}
		return a.thread(ctx, args[1])
	case "report":
		if len(args) != 5 {
			return errUsage
		}
		return a.submit(ctx, args[1], args[2], args[3], args[4])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// districts prints how many businesses each district holds, in the fixed
// district order, with 기타 last when present.
func (a *admin) districts() error {
	list, err := a.catalog.Get()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, b := range list {
		counts[b.District]++
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%d\n", config.DistrictAll, len(list))
	for _, d := range config.SeoulDistricts {
		fmt.Fprintf(tw, "%s\t%d\n", d, counts[d])
	}
	if n := counts[config.DistrictOther]; n > 0 {
		fmt.Fprintf(tw, "%s\t%d\n", config.DistrictOther, n)
	}
	return tw.Flush()
}

func (a *admin) stats(ctx context.Context, district string) error {
	list, err := a.catalog.Get()
	if err != nil {
		return err
	}
	table, err := a.reports.Storage.LoadReports(ctx)
	if err != nil {
		return err
	}

	rows := catalog.Filter(list, catalog.Query{District: district})
	s := analysis.Summarize(rows, table.Reports, a.now())

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "shown\t%d\n", s.Shown)
	fmt.Fprintf(tw, "missing_info\t%d\n", s.MissingInfo)
	fmt.Fprintf(tw, "today_reports\t%d\n", s.TodayReports)
	return tw.Flush()
}

func (a *admin) export(path, district string) error {
	list, err := a.catalog.Get()
	if err != nil {
		return err
	}
	rows := catalog.Filter(list, catalog.Query{District: district})
	if err := export.SaveXLSX(path, rows); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d businesses written to %s\n", len(rows), path)
	return nil
}

func (a *admin) thread(ctx context.Context, business string) error {
	thread, err := a.reports.Thread(ctx, business)
	if err != nil {
		return err
	}
	if len(thread) == 0 {
		fmt.Fprintln(a.out, "no reports")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, r := range thread {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Timestamp, r.Nickname, r.Kind, r.Body)
	}
	return tw.Flush()
}

func (a *admin) submit(ctx context.Context, business, nickname, kind, body string) error {
	if !report.KnownKind(kind) {
		fmt.Fprintf(a.out, "warning: %q is not one of the form kinds\n", kind)
	}
	rep, err := a.reports.Submit(ctx, business, nickname, kind, body)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report for %s saved at %s.\n", rep.BusinessName, rep.Timestamp)
	return nil
}
