package mock

import (
	"context"

	"github.com/fwojciec/webextract"
)

var _ webextract.PageService = (*PageService)(nil)

// PageService is a mock implementation of webextract.PageService.
type PageService struct {
	CreateRecordFn   func(ctx context.Context, rec *webextract.Record) error
	FindRecordByIDFn func(ctx context.Context, id string) (*webextract.Record, error)
	FindRecordsFn    func(ctx context.Context, filter webextract.RecordFilter) ([]*webextract.Record, error)
	DeleteRecordFn   func(ctx context.Context, id string) error
}

func (s *PageService) CreateRecord(ctx context.Context, rec *webextract.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *PageService) FindRecordByID(ctx context.Context, id string) (*webextract.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *PageService) FindRecords(ctx context.Context, filter webextract.RecordFilter) ([]*webextract.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *PageService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
