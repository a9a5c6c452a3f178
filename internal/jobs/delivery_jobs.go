package jobs

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

// MarkOverdueHandoffs flags pending/assigned handoffs whose scheduled date
// has passed. Handoffs are never auto-cancelled; an admin notification is
// recorded for the assignee (or left unassigned in the log).
func (jr *JobRunner) MarkOverdueHandoffs() {
	jr.runWithRecovery("MarkOverdueHandoffs", func() {
		ctx := context.Background()
		today := time.Now().Format("2006-01-02")

		overdue, err := jr.store.DeliveryRepository.ListOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue handoffs", "error", err)
			return
		}

		logger.Info("Found overdue handoffs", "count", len(overdue))
		for _, dp := range overdue {
			logger.Debug("Handoff overdue",
				"delivery_pickup_id", dp.ID,
				"type", dp.Type,
				"status", dp.Status,
				"scheduled_date", dp.ScheduledDate)

			if dp.AssignedToID == nil {
				continue
			}
			note := &domain.Notification{
				StaffID: *dp.AssignedToID,
				Title:   "Handoff Overdue",
				Message: fmt.Sprintf("%s #%d was scheduled for %s and is still %s", dp.Type, dp.ID, dp.ScheduledDate, dp.Status),
				Attributes: map[string]string{
					"type":               "HANDOFF_OVERDUE",
					"delivery_pickup_id": fmt.Sprintf("%d", dp.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue notification", "delivery_pickup_id", dp.ID, "error", err)
			}
		}
	})
}

// SendScheduleReminders emails each assignee a summary of today's handoffs.
func (jr *JobRunner) SendScheduleReminders() {
	jr.runWithRecovery("SendScheduleReminders", func() {
		ctx := context.Background()
		today := time.Now().Format("2006-01-02")

		assigned, err := jr.store.DeliveryRepository.List(ctx, repository.HandoffFilter{
			Status:        domain.HandoffStatusAssigned,
			ScheduledDate: today,
		})
		if err != nil {
			logger.Error("Failed to list today's handoffs", "error", err)
			return
		}

		counts := map[int32]int{}
		for _, dp := range assigned {
			if dp.AssignedToID != nil {
				counts[*dp.AssignedToID]++
			}
		}

		for staffID, count := range counts {
			staff, err := jr.store.StaffRepository.GetByID(ctx, staffID)
			if err != nil || staff == nil {
				logger.Warn("Skipping reminder for unknown staff", "staff_id", staffID, "error", err)
				continue
			}
			if err := jr.emailSvc.SendScheduleReminder(ctx, staff.Email, staff.Name, today, count); err != nil {
				logger.Error("Failed to send schedule reminder", "staff_id", staffID, "error", err)
			}
		}
		logger.Info("Schedule reminders sent", "staff_count", len(counts))
	})
}
