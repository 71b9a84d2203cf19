package services

import (
	"context"
	"fmt"
	"io"

	"vote-tally/models"
	"vote-tally/storage"
	"vote-tally/utils"
)

// Pipeline runs one aggregation pass: load, aggregate, write.
type Pipeline struct {
	Loader     *Loader
	Aggregator *Aggregator
	Report     *ReportService
	Logger     *utils.Logger

	// Primary receives the summary tables first.
	Primary storage.SummaryWriter

	// OpenMirror, when set, connects a secondary sink that is written only
	// after Primary succeeded. It is closed before Run returns.
	OpenMirror func(ctx context.Context) (storage.SummaryWriter, error)

	// ReportOut receives the printed summary; nil disables printing.
	ReportOut io.Writer
}

// Result is what a successful run produced.
type Result struct {
	Legislators *models.LegislatorStats
	Bills       *models.BillStats
	Report      *models.SummaryReport
}

// Run executes the pipeline. Nothing is written when loading fails. A write
// failure stops the run but does not undo outputs already written.
func (p *Pipeline) Run(ctx context.Context, paths Paths) (*Result, error) {
	ds, err := p.Loader.Load(paths)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Legislators: p.Aggregator.AggregateLegislators(ds.Legislators, ds.VoteResults),
		Bills:       p.Aggregator.AggregateBills(ds.Bills, ds.Legislators, ds.Votes, ds.VoteResults),
	}

	if err := p.write(ctx, p.Primary, res); err != nil {
		return nil, err
	}

	if p.OpenMirror != nil {
		mirror, err := p.OpenMirror(ctx)
		if err != nil {
			return nil, fmt.Errorf("pipeline: open mirror: %w", err)
		}
		err = p.write(ctx, mirror, res)
		if cerr := mirror.Close(); cerr != nil {
			p.Logger.Warn("[pipeline] Closing %s mirror: %v", mirror.Name(), cerr)
		}
		if err != nil {
			return nil, err
		}
	}

	res.Report = p.Report.Generate(res.Legislators, res.Bills)
	if p.ReportOut != nil {
		p.Report.Print(p.ReportOut, res.Report)
	}
	return res, nil
}

func (p *Pipeline) write(ctx context.Context, w storage.SummaryWriter, res *Result) error {
	if err := w.WriteLegislators(ctx, res.Legislators); err != nil {
		return fmt.Errorf("pipeline: %s legislators: %w", w.Name(), err)
	}
	if err := w.WriteBills(ctx, res.Bills); err != nil {
		return fmt.Errorf("pipeline: %s bills: %w", w.Name(), err)
	}
	p.Logger.Info("[pipeline] Wrote %d legislator and %d bill rows via %s",
		res.Legislators.Len(), res.Bills.Len(), w.Name())
	return nil
}
