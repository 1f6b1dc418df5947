package json

import (
	"encoding/json"
	"fmt"
	"os"

	"ReviewHarvest/internal/export"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export 把表转成对象数组写出：每行按表头转成一个 map
func (e *JSONExporter) Export(table export.Table, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	records := make([]map[string]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make(map[string]string, len(table.Header))
		for i, key := range table.Header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")  // 格式化输出
	encoder.SetEscapeHTML(false) // 不转义 HTML 字符

	data := map[string]interface{}{
		"total":   len(records),
		"records": records,
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("写入 JSON 失败: %w", err)
	}

	return nil
}

func init() {
	export.MustRegister(export.Provider{
		Name: "json",
		Ext:  ".json",
		New:  func() export.Exporter { return NewJSONExporter() },
	})
}
