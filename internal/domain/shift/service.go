package shift

import "context"

type Service interface {
	// Submit stamps the report with the server clock and stores it.
	Submit(ctx context.Context, req SubmitReportRequest) (ReportResponse, error)

	List(ctx context.Context, filter ReportFilter) ([]ReportResponse, error)

	// Reset deletes every shift report. confirm must be true.
	Reset(ctx context.Context, confirm bool) (int64, error)
}
