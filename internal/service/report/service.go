package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/campushq/attendance-backend-go/internal/domain/attendance"
	"github.com/campushq/attendance-backend-go/internal/domain/campus"
	"github.com/campushq/attendance-backend-go/internal/domain/report"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
)

type ReportServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	campusRepo     campus.CampusRepository

	now func() time.Time
}

func NewReportService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	campusRepo campus.CampusRepository,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		campusRepo:     campusRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	c, err := s.campusRepo.GetByID(ctx, req.CampusID)
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to get campus: %w", err)
	}
	if c == nil {
		return report.Export{}, campus.ErrCampusNotFound
	}

	records, err := s.attendanceRepo.ListByCampus(ctx, req.CampusID, req.WorkerID)
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	now := s.now()
	rows := report.Summarize(records, now)
	stamp := now.Format("20060102-150405")

	switch req.Format {
	case report.FormatXLSX:
		content, err := writeXLSX(rows)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			FileName:    fmt.Sprintf("attendance-%s-%s.xlsx", c.Name, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	default:
		content, err := writeCSV(rows)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			FileName:    fmt.Sprintf("attendance-%s-%s.csv", c.Name, stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	}
}

func writeCSV(rows []report.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.Headers()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.WorkerID,
			row.WorkerName,
			row.Date,
			row.PunchIn,
			row.PunchOut,
			strconv.FormatFloat(row.WorkedHours, 'f', 2, 64),
			row.Status,
			strconv.FormatFloat(row.OutOfBoundMinutes, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

const xlsxSheet = "Attendance"

func writeXLSX(rows []report.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, title := range report.Headers() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.WorkerID,
			row.WorkerName,
			row.Date,
			row.PunchIn,
			row.PunchOut,
			row.WorkedHours,
			row.Status,
			row.OutOfBoundMinutes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
