package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"

	"github.com/uma-arai/hotel-dashboard/internal/common/config"
	"github.com/uma-arai/hotel-dashboard/internal/common/utils"
	"github.com/uma-arai/hotel-dashboard/internal/format"
	"github.com/uma-arai/hotel-dashboard/internal/service/batch"
)

const (
	segmentName   = "hotel-statement-batch"
	failureReason = "StatementBatchFailed"
	localToken    = "DUMMY_TASK_TOKEN"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "明細書作成のタイムアウト時間")
	reservations := flag.String("reservations", "", "明細書を作成する予約ID（カンマ区切り）")
	flag.Parse()

	taskToken := taskTokenFromArgs()
	reservationIDs, err := batch.ParseReservationIDs(*reservations)
	if err != nil {
		log.Fatalf("Invalid -reservations: %v", err)
	}

	cfg, err := config.LoadConfig(taskToken)
	if err != nil {
		log.Fatal(utils.GetStackWithError(err))
	}
	// 明細書の日付は表示用のタイムゾーンに揃える
	format.SetLocation(cfg.DisplayLocation)

	if cfg.EnableTracing {
		configureTracing()
	}

	var sfnClient *sfn.Client
	if !cfg.IsLocal() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Fatal(utils.GetStackWithError(err))
		}
		sfnClient = sfn.NewFromConfig(awsCfg)
	}

	service, err := batch.NewStatementBatchService(cfg, sfnClient)
	if err != nil {
		log.Fatal(utils.GetStackWithError(err))
	}
	defer service.Close()
	service.SetArgs(reservationIDs)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if cfg.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, segmentName)
		defer seg.Close(nil)
		annotateSegment(seg, reservationIDs, *timeout)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- utils.RunWithTimeout(ctx, *timeout, service.Run)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Statement batch interrupted by %v", sig)
		cancel()
	case err := <-errChan:
		if err == nil {
			log.Printf("Statements built for %d reservation(s)", len(reservationIDs))
			return
		}
		log.Printf("Statement batch failed: %v", err)
		if sfnClient != nil {
			notifyFailure(sfnClient, taskToken, err)
		}
		// os.Exit は defer を実行しない
		service.Close()
		os.Exit(1)
	}
}

// taskTokenFromArgs は位置引数の末尾からタスクトークンを取り出します
// ENV=LOCAL ではStep Functionsを経由しないため固定値を返します
func taskTokenFromArgs() string {
	if os.Getenv("ENV") == "LOCAL" {
		return localToken
	}
	if flag.NArg() == 0 || flag.Arg(flag.NArg()-1) == "" {
		log.Fatalf("Task token is required")
	}
	return flag.Arg(flag.NArg() - 1)
}

func configureTracing() {
	err := xray.Configure(xray.Config{
		DaemonAddr:     "127.0.0.1:2000",
		ServiceVersion: "1.0.0",
	})
	if err != nil {
		log.Printf("Failed to configure X-Ray daemon, falling back to defaults: %v", err)
		if err := xray.Configure(xray.Config{}); err != nil {
			log.Fatalf("Failed to configure default X-Ray settings: %v", err)
		}
	}
	os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
}

func annotateSegment(seg *xray.Segment, reservationIDs []int64, timeout time.Duration) {
	if err := seg.AddMetadata("reservations", reservationIDs); err != nil {
		log.Printf("Failed to add reservations metadata: %v", err)
	}
	if err := seg.AddMetadata("timeout", timeout.String()); err != nil {
		log.Printf("Failed to add timeout metadata: %v", err)
	}
}

// notifyFailure は明細書作成の失敗をStep Functionsに通知します
// Cause にはスタックトレースを含めない
func notifyFailure(client *sfn.Client, taskToken string, cause error) {
	// 実行中のコンテキストは期限切れの可能性がある
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.SendTaskFailure(ctx, &sfn.SendTaskFailureInput{
		TaskToken: aws.String(taskToken),
		Error:     aws.String(failureReason),
		Cause:     aws.String(utils.FailureCause(cause)),
	})
	if err != nil {
		log.Printf("Failed to send task failure: %v", utils.GetStackWithError(err))
	}
}
