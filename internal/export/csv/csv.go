package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"ReviewHarvest/internal/export"
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export 写出 UTF-8 BOM + 表头 + 数据行。
// os.Create 会截断已有文件，天然满足同键重复运行覆盖旧输出的约定
func (e *CSVExporter) Export(table export.Table, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	// BOM 让 Excel 正确识别 UTF-8
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("写入 BOM 失败: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("写入数据失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	export.MustRegister(export.Provider{
		Name: "csv",
		Ext:  ".csv",
		New:  func() export.Exporter { return NewCSVExporter() },
	})
}
