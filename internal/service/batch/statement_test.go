package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"

	"github.com/uma-arai/hotel-dashboard/internal/common/config"
	"github.com/uma-arai/hotel-dashboard/internal/repository"
	"github.com/uma-arai/hotel-dashboard/internal/service/dashboard"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// MockDetailLoader はテスト用に固定の予約詳細を返します
type MockDetailLoader struct {
	details map[int64]*dashboard.ReservationDetail
	err     error
	loaded  []int64
}

func (m *MockDetailLoader) NewReservationDetailContainer() *viewstate.Container[int64, *dashboard.ReservationDetail] {
	return viewstate.New(func(ctx context.Context, id int64) (*dashboard.ReservationDetail, error) {
		m.loaded = append(m.loaded, id)
		if m.err != nil {
			return nil, m.err
		}
		d, ok := m.details[id]
		if !ok {
			return nil, fmt.Errorf("reservations %d: %w", id, repository.ErrNotFound)
		}
		return d, nil
	}, func(err error) bool { return errors.Is(err, repository.ErrNotFound) })
}

// MockTaskNotifier はテスト用のStep Functionsクライアントです
type MockTaskNotifier struct {
	called bool
	input  *sfn.SendTaskSuccessInput
	err    error
}

func (m *MockTaskNotifier) SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error) {
	m.called = true
	m.input = params
	return &sfn.SendTaskSuccessOutput{}, m.err
}

func newTestConfig(env, taskToken string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = env
	cfg.SFN.TaskToken = taskToken
	return cfg
}

func testDetails() map[int64]*dashboard.ReservationDetail {
	return map[int64]*dashboard.ReservationDetail{
		100: {
			ID:             100,
			Status:         status.Reservation.Badge(1),
			TotalRoomValue: 750.5,
			Summary:        dashboard.SummaryCards{ItemCount: 3, TotalConsumption: 85, DepartmentCount: 2},
			Departments: []dashboard.DepartmentRow{
				{Name: "Bar", Total: 35, Count: 2},
				{Name: "Spa", Total: 50, Count: 1},
			},
		},
	}
}

type statementOutput struct {
	Statements []Statement `json:"statements"`
}

func TestStatementBatchService_Run(t *testing.T) {
	// X-Rayのセグメントを設定
	ctx, seg := xray.BeginSegment(context.Background(), "TestStatementBatchService_Run")
	defer seg.Close(nil)

	tests := []struct {
		name         string
		ids          []int64
		env          string
		taskToken    string
		loaderErr    error
		notifierErr  error
		wantErr      bool
		wantNotified bool
		wantNotFound []int64
	}{
		{
			name:         "明細書を作成して通知",
			ids:          []int64{100},
			taskToken:    "token-1",
			wantNotified: true,
		},
		{
			name:         "存在しない予約はnot_foundとして出力",
			ids:          []int64{100, 999},
			taskToken:    "token-1",
			wantNotified: true,
			wantNotFound: []int64{999},
		},
		{
			name:      "ローカルでは通知しない",
			ids:       []int64{100},
			env:       "LOCAL",
			wantErr:   false,
			taskToken: "",
		},
		{
			name:      "取得失敗はバッチを失敗させる",
			ids:       []int64{100},
			taskToken: "token-1",
			loaderErr: errors.New("connection refused"),
			wantErr:   true,
		},
		{
			name:    "タスクトークンが無い",
			ids:     []int64{100},
			wantErr: true,
		},
		{
			name:         "通知の失敗",
			ids:          []int64{100},
			taskToken:    "token-1",
			notifierErr:  errors.New("throttled"),
			wantErr:      true,
			wantNotified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &MockDetailLoader{details: testDetails(), err: tt.loaderErr}
			notifier := &MockTaskNotifier{err: tt.notifierErr}

			service := newStatementBatchService(newTestConfig(tt.env, tt.taskToken), loader, notifier)
			service.SetArgs(tt.ids)
			err := service.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if notifier.called != tt.wantNotified {
				t.Fatalf("SendTaskSuccess called = %v, want %v", notifier.called, tt.wantNotified)
			}
			if !notifier.called || tt.wantErr {
				return
			}

			if *notifier.input.TaskToken != tt.taskToken {
				t.Errorf("TaskToken = %s, want %s", *notifier.input.TaskToken, tt.taskToken)
			}
			var out statementOutput
			if err := json.Unmarshal([]byte(*notifier.input.Output), &out); err != nil {
				t.Fatalf("invalid output: %v", err)
			}
			if len(out.Statements) != len(tt.ids) {
				t.Fatalf("statements = %d, want %d", len(out.Statements), len(tt.ids))
			}
			var notFound []int64
			for _, st := range out.Statements {
				if st.NotFound {
					notFound = append(notFound, st.ReservationID)
				}
			}
			if !slices.Equal(notFound, tt.wantNotFound) {
				t.Errorf("not found = %v, want %v", notFound, tt.wantNotFound)
			}

			first := out.Statements[0]
			if first.TotalConsumption != 85 || first.DepartmentCount != 2 || first.TotalRoomValue != 750.5 {
				t.Errorf("statement = %+v", first)
			}
			if first.Status == nil || first.Status.Label != "Confirmada" {
				t.Errorf("Status = %+v", first.Status)
			}
			want := []DepartmentStatement{{Name: "Bar", Total: 35, Count: 2}, {Name: "Spa", Total: 50, Count: 1}}
			if !slices.Equal(first.Departments, want) {
				t.Errorf("Departments = %+v, want %+v", first.Departments, want)
			}
		})
	}
}

func TestStatementBatchService_ReusesContainer(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestStatementBatchService_ReusesContainer")
	defer seg.Close(nil)

	loader := &MockDetailLoader{details: testDetails()}
	service := newStatementBatchService(newTestConfig("LOCAL", ""), loader, nil)
	service.SetArgs([]int64{999, 100, 100})

	statements, err := service.buildStatements(ctx)
	if err != nil {
		t.Fatalf("buildStatements() error = %v", err)
	}
	if !slices.Equal(loader.loaded, []int64{999, 100, 100}) {
		t.Errorf("loaded = %v", loader.loaded)
	}
	if !statements[0].NotFound || statements[1].NotFound || statements[2].ReservationID != 100 {
		t.Errorf("statements = %+v", statements)
	}
	if statements[0].Departments == nil {
		t.Error("not found statement must have an empty departments list")
	}
}

func TestParseReservationIDs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int64
		wantErr bool
	}{
		{name: "カンマ区切り", raw: "100,101", want: []int64{100, 101}},
		{name: "空白を許容", raw: " 100 , 101 ,", want: []int64{100, 101}},
		{name: "数値以外", raw: "100,abc", wantErr: true},
		{name: "0以下", raw: "0", wantErr: true},
		{name: "空", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReservationIDs(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReservationIDs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseReservationIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}
