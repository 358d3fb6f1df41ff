package service

import (
	"context"
	"testing"

	"github.com/jollymugivara/transaction-revision-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 针对修订历史结构不变量的属性测试：
// 任意更新序列之后，修订版本 ID 严格递增、当前指针指向最新版本、
// 且当前版本始终存在于历史之中。
func TestHistoryInvariantsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	// SuchThat 过滤器只接受长度不超过 6 的切片，对齐生成器尺寸上限并放宽丢弃率，
	// 避免 runner 因丢弃过多而过早放弃
	parameters.MaxSize = 6
	parameters.MaxDiscardRatio = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("updates keep exactly one current revision at the head", prop.ForAll(
		func(amounts []string) bool {
			env := newTestEnv(t)
			ctx := context.Background()

			record := createRecord(t, env, adminActor)
			for _, amount := range amounts {
				updated, err := env.txService.Update(ctx, adminActor, &dto.TransactionUpdateRequest{
					ID:       record.ID,
					Name:     "office rent",
					Sender:   "ACME Ltd",
					Receiver: "Prime Estates",
					Amount:   amount,
				})
				if err != nil {
					return false
				}
				record = updated
			}

			ids, err := env.repo.RevisionIDs(ctx, record.ID)
			if err != nil || len(ids) != len(amounts)+1 {
				return false
			}
			for i := 1; i < len(ids); i++ {
				if ids[i] <= ids[i-1] {
					return false
				}
			}
			// 当前指针指向最新的修订版本
			return record.CurrentRevisionID == ids[len(ids)-1]
		},
		gen.SliceOf(gen.RegexMatch(`[0-9]{1,10}(\.[0-9]{1,2})?`)).
			SuchThat(func(v []string) bool { return len(v) <= 6 }),
	))

	properties.Property("revert restores the snapshot of any past revision", prop.ForAll(
		func(amounts []string, pick uint8) bool {
			if len(amounts) == 0 {
				return true
			}

			env := newTestEnv(t)
			ctx := context.Background()

			record := createRecord(t, env, adminActor)
			for _, amount := range amounts {
				updated, err := env.txService.Update(ctx, adminActor, &dto.TransactionUpdateRequest{
					ID:       record.ID,
					Name:     "office rent",
					Sender:   "ACME Ltd",
					Receiver: "Prime Estates",
					Amount:   amount,
				})
				if err != nil {
					return false
				}
				record = updated
			}

			ids, err := env.repo.RevisionIDs(ctx, record.ID)
			if err != nil {
				return false
			}
			sourceID := ids[int(pick)%len(ids)]
			source, err := env.repo.GetRevision(ctx, sourceID)
			if err != nil {
				return false
			}

			reverted, err := env.revService.Revert(ctx, adminActor, &dto.RevisionRevertRequest{
				TransactionID: record.ID,
				RevisionID:    sourceID,
			})
			if err != nil {
				return false
			}

			// 回滚追加新版本并复制业务字段
			return reverted.CurrentRevisionID > ids[len(ids)-1] &&
				reverted.Amount == source.Amount &&
				reverted.Name == source.Name
		},
		gen.SliceOf(gen.RegexMatch(`[0-9]{1,10}(\.[0-9]{1,2})?`)).
			SuchThat(func(v []string) bool { return len(v) >= 1 && len(v) <= 4 }),
		gen.UInt8(),
	))

	properties.Property("deleting the current revision always fails", prop.ForAll(
		func(updates uint8) bool {
			env := newTestEnv(t)
			ctx := context.Background()

			record := createRecord(t, env, adminActor)
			for i := 0; i < int(updates)%4; i++ {
				updated, err := env.txService.Update(ctx, adminActor, &dto.TransactionUpdateRequest{
					ID:       record.ID,
					Name:     "office rent",
					Sender:   "ACME Ltd",
					Receiver: "Prime Estates",
					Amount:   "100",
				})
				if err != nil {
					return false
				}
				record = updated
			}

			_, err := env.revService.DeleteRevision(ctx, adminActor, &dto.RevisionDeleteRequest{
				TransactionID: record.ID,
				RevisionID:    record.CurrentRevisionID,
			})
			return err != nil
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
