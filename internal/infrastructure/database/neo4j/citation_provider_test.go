package neo4j

import (
	"context"
	"errors"
	"testing"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

type fakeResult struct {
	records []*neo4jdriver.Record
	idx     int
	err     error
}

func (r *fakeResult) Next(context.Context) bool {
	if r.idx >= len(r.records) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeResult) Record() *neo4jdriver.Record { return r.records[r.idx-1] }
func (r *fakeResult) Err() error                  { return r.err }

type fakeTransaction struct {
	records []*neo4jdriver.Record
	runErr  error
	params  map[string]any
}

func (t *fakeTransaction) Run(_ context.Context, _ string, params map[string]any) (Result, error) {
	t.params = params
	if t.runErr != nil {
		return nil, t.runErr
	}
	return &fakeResult{records: t.records}, nil
}

type fakeSession struct {
	tx     *fakeTransaction
	closed bool
}

func (s *fakeSession) ExecuteRead(_ context.Context, work func(Transaction) (any, error)) (any, error) {
	return work(s.tx)
}

func (s *fakeSession) Close(context.Context) error {
	s.closed = true
	return nil
}

type fakeDriver struct {
	session *fakeSession
}

func (d *fakeDriver) NewSession(context.Context) Session       { return d.session }
func (d *fakeDriver) VerifyConnectivity(context.Context) error { return nil }
func (d *fakeDriver) Close(context.Context) error              { return nil }

func record(keys []string, values []any) *neo4jdriver.Record {
	return &neo4jdriver.Record{Keys: keys, Values: values}
}

func networkRecord(caseID string, inbound []any, outbound []any, authority float64) *neo4jdriver.Record {
	return record(
		[]string{"case_id", "inbound", "outbound", "authority_score"},
		[]any{caseID, inbound, outbound, authority},
	)
}

func TestCitationProvider_BuildNetwork(t *testing.T) {
	tx := &fakeTransaction{records: []*neo4jdriver.Record{
		networkRecord("brown_v_board_1954",
			[]any{"cooper_v_aaron_1958", "loving_v_virginia_1967"},
			[]any{
				map[string]any{
					"citation_string": "Plessy v. Ferguson, 163 U.S. 537 (1896)",
					"target_case_id":  "plessy_v_ferguson_1896",
					"context":         "overruling",
				},
			},
			0.97),
		networkRecord("plessy_v_ferguson_1896", []any{"brown_v_board_1954"}, []any{}, 0.4),
	}}
	session := &fakeSession{tx: tx}
	provider := NewCitationProvider(&fakeDriver{session: session}, nil)

	corpus := []document.Document{
		{ID: "brown_v_board_1954"},
		{ID: "plessy_v_ferguson_1896"},
		{ID: ""},
	}

	network, err := provider.BuildNetwork(context.Background(), corpus)
	require.NoError(t, err)
	require.Len(t, network, 2)
	assert.True(t, session.closed)

	ids, ok := tx.params["case_ids"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"brown_v_board_1954", "plessy_v_ferguson_1896"}, ids)

	brown := network[ptypes.CaseID("brown_v_board_1954")]
	assert.Equal(t, []ptypes.CaseID{"cooper_v_aaron_1958", "loving_v_virginia_1967"}, brown.InboundCitations)
	require.Len(t, brown.OutboundCitations, 1)
	assert.Equal(t, ptypes.CaseID("plessy_v_ferguson_1896"), brown.OutboundCitations[0].TargetCaseID)
	assert.Equal(t, ptypes.ContextOverruling, brown.OutboundCitations[0].Context)
	assert.InDelta(t, 0.97, brown.AuthorityScore, 1e-9)
	require.Len(t, brown.OverrulingCitations(), 1)

	plessy := network[ptypes.CaseID("plessy_v_ferguson_1896")]
	assert.Empty(t, plessy.OutboundCitations)
	assert.InDelta(t, 0.4, plessy.AuthorityScore, 1e-9)
}

func TestCitationProvider_UnknownContextFallsBackToNeutral(t *testing.T) {
	tx := &fakeTransaction{records: []*neo4jdriver.Record{
		networkRecord("roe_v_wade_1973", []any{}, []any{
			map[string]any{
				"citation_string": "Griswold v. Connecticut, 381 U.S. 479 (1965)",
				"target_case_id":  "griswold_v_connecticut_1965",
				"context":         "cf",
			},
		}, 1.3),
	}}
	provider := NewCitationProvider(&fakeDriver{session: &fakeSession{tx: tx}}, nil)

	network, err := provider.BuildNetwork(context.Background(), []document.Document{{ID: "roe_v_wade_1973"}})
	require.NoError(t, err)

	entry := network[ptypes.CaseID("roe_v_wade_1973")]
	require.Len(t, entry.OutboundCitations, 1)
	assert.Equal(t, ptypes.ContextNeutral, entry.OutboundCitations[0].Context)
	assert.Equal(t, 1.0, entry.AuthorityScore)
}

func TestCitationProvider_SkipsEdgesWithoutTargetOrText(t *testing.T) {
	tx := &fakeTransaction{records: []*neo4jdriver.Record{
		networkRecord("marbury_v_madison_1803", []any{}, []any{
			map[string]any{"citation_string": "", "target_case_id": "", "context": "neutral"},
		}, 0.9),
	}}
	provider := NewCitationProvider(&fakeDriver{session: &fakeSession{tx: tx}}, nil)

	network, err := provider.BuildNetwork(context.Background(), []document.Document{{ID: "marbury_v_madison_1803"}})
	require.NoError(t, err)
	assert.Empty(t, network[ptypes.CaseID("marbury_v_madison_1803")].OutboundCitations)
}

func TestCitationProvider_EmptyCorpusSkipsQuery(t *testing.T) {
	tx := &fakeTransaction{}
	session := &fakeSession{tx: tx}
	provider := NewCitationProvider(&fakeDriver{session: session}, nil)

	network, err := provider.BuildNetwork(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, network)
	assert.False(t, session.closed)
}

func TestCitationProvider_QueryErrorWrapped(t *testing.T) {
	tx := &fakeTransaction{runErr: errors.New("connection reset")}
	provider := NewCitationProvider(&fakeDriver{session: &fakeSession{tx: tx}}, nil)

	_, err := provider.BuildNetwork(context.Background(), []document.Document{{ID: "some_case"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "citation network")
}
