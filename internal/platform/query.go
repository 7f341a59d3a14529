package platform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/query"
)

// QueryAPI submits privacy-preserving trajectory queries. Responses pass
// through the normalizer, so callers always receive a well-shaped result
// whatever the server or the network did.
type QueryAPI struct {
	gw *gateway.Client
}

// NewQueryAPI creates the query client
func NewQueryAPI(gw *gateway.Client) *QueryAPI {
	return &QueryAPI{gw: gw}
}

// Process routes the request to the endpoint its algorithm selects and
// normalizes the response. The error return covers invalid requests
// only; transport and server failures are folded into the response.
func (q *QueryAPI) Process(ctx context.Context, req query.Request) (query.Response, error) {
	if len(req.Queries) == 0 {
		return query.Response{}, fmt.Errorf("query request needs at least one filter")
	}
	if req.TimeSpan <= 0 {
		return query.Response{}, fmt.Errorf("time_span must be positive")
	}

	endpoint := query.Endpoint(req.Algorithm)

	resp, err := q.gw.Do(ctx, &gateway.Request{
		Method: http.MethodPost,
		Path:   endpoint,
		Body:   req,
	})
	if err != nil {
		// 网络或服务器失败时合成终态错误响应
		return query.Fallback(gateway.UpstreamMessage(err)), nil
	}

	return query.Normalize(resp.Body), nil
}
