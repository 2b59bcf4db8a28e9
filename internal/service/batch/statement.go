package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"

	"github.com/uma-arai/hotel-dashboard/internal/common/config"
	"github.com/uma-arai/hotel-dashboard/internal/common/database"
	"github.com/uma-arai/hotel-dashboard/internal/common/utils"
	"github.com/uma-arai/hotel-dashboard/internal/repository"
	"github.com/uma-arai/hotel-dashboard/internal/service/dashboard"
	"github.com/uma-arai/hotel-dashboard/internal/status"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// TaskNotifier はStep Functionsへのタスク成功通知です。*sfn.Client が実装します
type TaskNotifier interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
}

// DetailLoader は予約詳細のコンテナを作成します。*dashboard.Service が実装します
type DetailLoader interface {
	NewReservationDetailContainer() *viewstate.Container[int64, *dashboard.ReservationDetail]
}

// DepartmentStatement は明細書の部門別集計です
type DepartmentStatement struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Statement は予約1件分の明細書です
type Statement struct {
	ReservationID    int64                 `json:"reservation_id"`
	Status           *status.Badge         `json:"status,omitempty"`
	TotalRoomValue   float64               `json:"total_room_value"`
	TotalConsumption float64               `json:"total_consumption"`
	DepartmentCount  int                   `json:"department_count"`
	Departments      []DepartmentStatement `json:"departments"`
	NotFound         bool                  `json:"not_found,omitempty"`
}

// StatementBatchService は指定された予約の明細書を作成してStep Functionsに返します
// データの更新は行いません
type StatementBatchService struct {
	reservationIDs []int64
	db             *database.DB
	detail         *viewstate.Container[int64, *dashboard.ReservationDetail]
	sfnClient      TaskNotifier
	cfg            *config.Config
}

// NewStatementBatchService は新しいStatementBatchServiceを作成します
func NewStatementBatchService(cfg *config.Config, sfnClient *sfn.Client) (*StatementBatchService, error) {
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	// database.DBをrepository.DBに変換
	repoDB := &repository.DB{DB: db.DB}
	service := dashboard.NewServiceFromStore(repository.NewSQLStore(repoDB))

	// nilの*sfn.Clientをインターフェースに入れない
	var notifier TaskNotifier
	if sfnClient != nil {
		notifier = sfnClient
	}

	s := newStatementBatchService(cfg, service, notifier)
	s.db = db
	return s, nil
}

func newStatementBatchService(cfg *config.Config, loader DetailLoader, notifier TaskNotifier) *StatementBatchService {
	return &StatementBatchService{
		detail:    loader.NewReservationDetailContainer(),
		sfnClient: notifier,
		cfg:       cfg,
	}
}

// Close は終了処理を行います
func (s *StatementBatchService) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetArgs は明細書を作成する予約IDを設定します
func (s *StatementBatchService) SetArgs(reservationIDs []int64) {
	s.reservationIDs = reservationIDs
}

// ParseReservationIDs はカンマ区切りの予約IDを読み取ります
func ParseReservationIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid reservation id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("no reservation ids given")
	}
	return ids, nil
}

// Run は明細書の作成バッチを実行します
func (s *StatementBatchService) Run(ctx context.Context) error {
	// X-Rayセグメントの作成
	ctx, seg := xray.BeginSubsegment(ctx, "StatementBatchService.Run")
	if seg != nil {
		defer seg.Close(nil)
	}

	startTime := time.Now()

	statements, err := s.buildStatements(ctx)
	if err != nil {
		return utils.GetStackWithError(fmt.Errorf("failed to build statements: %w", err))
	}

	if err := s.sendTaskSuccess(ctx, statements); err != nil {
		return utils.GetStackWithError(fmt.Errorf("failed to send task success: %w", err))
	}

	duration := time.Since(startTime)

	// セグメントにメタデータを追加
	if seg != nil {
		if err := seg.AddMetadata("duration", duration.String()); err != nil {
			log.Printf("Failed to add duration metadata: %v", err)
		}
	}

	log.Printf("Statement batch process completed successfully. Reservations: %d, Duration: %v", len(statements), duration)
	return nil
}

// buildStatements は予約ごとに詳細を読み込み、明細書に変換します
// 存在しない予約は not_found として出力し、それ以外の失敗はバッチ全体を失敗させます
func (s *StatementBatchService) buildStatements(ctx context.Context) ([]Statement, error) {
	statements := make([]Statement, 0, len(s.reservationIDs))
	for _, id := range s.reservationIDs {
		state, _ := s.detail.Load(ctx, id)
		switch state.Phase {
		case viewstate.PhaseReady:
			statements = append(statements, newStatement(state.Value))
		case viewstate.PhaseNotFound:
			log.Printf("Reservation %d not found", id)
			statements = append(statements, Statement{ReservationID: id, Departments: []DepartmentStatement{}, NotFound: true})
		default:
			return nil, fmt.Errorf("failed to load reservation %d: %w", id, state.Err)
		}
	}
	return statements, nil
}

func newStatement(detail *dashboard.ReservationDetail) Statement {
	departments := make([]DepartmentStatement, 0, len(detail.Departments))
	for _, d := range detail.Departments {
		departments = append(departments, DepartmentStatement{Name: d.Name, Total: d.Total, Count: d.Count})
	}
	badge := detail.Status
	return Statement{
		ReservationID:    detail.ID,
		Status:           &badge,
		TotalRoomValue:   detail.TotalRoomValue,
		TotalConsumption: detail.Summary.TotalConsumption,
		DepartmentCount:  detail.Summary.DepartmentCount,
		Departments:      departments,
	}
}

// sendTaskSuccess は、Step Functionsのタスク成功を通知し、明細書を返却します
func (s *StatementBatchService) sendTaskSuccess(ctx context.Context, statements []Statement) error {
	output, err := json.Marshal(map[string]any{
		"statements": statements,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal statements: %w", err)
	}

	// ローカルの場合はStep Functionsの処理をスキップ
	if s.cfg.IsLocal() || s.sfnClient == nil {
		log.Printf("Local environment detected. Skipping Step Functions task success notification. Output: %s", string(output))
		return nil
	}

	taskToken := s.cfg.SFN.TaskToken
	if taskToken == "" {
		return fmt.Errorf("SFN_TASK_TOKEN is not set in config")
	}

	// SendTaskSuccess APIを呼び出す
	input := &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(taskToken),
		Output:    aws.String(string(output)),
	}
	if _, err := s.sfnClient.SendTaskSuccess(ctx, input); err != nil {
		return fmt.Errorf("failed to send task success: %w", err)
	}

	log.Printf("Successfully sent task success with statements: %s", string(output))
	return nil
}
