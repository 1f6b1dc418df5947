package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ReviewHarvest/internal/collector"
	"ReviewHarvest/internal/openreview"
	"ReviewHarvest/pkg/logger"
)

// Server 触发采集运行的薄 HTTP 层：
// 入参不合法返回 400，配置类错误（不支持的类别 / 年份）也算客户端错误，
// 其余失败统一 500 并带上底层错误信息，绝不吞掉错误返回空结果
type Server struct {
	collector *collector.Collector
	echo      *echo.Echo
}

// YearRequest 批量采集请求体
type YearRequest struct {
	Years []int `json:"years"`
}

func New(col *collector.Collector) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{collector: col, echo: e}
	e.GET("/", s.handleRoot)
	e.GET("/fetch/:year/:filter_type", s.handleFetchFiltered)
	e.POST("/collect/", s.handleCollectPapers)
	e.POST("/collect_all/", s.handleCollectAll)
	return s
}

func (s *Server) Start(addr string) error {
	logger.Info("[Server] 监听 %s", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "ReviewHarvest API is running!",
	})
}

// handleFetchFiltered 按决定类别采集单个年份并落盘
func (s *Server) handleFetchFiltered(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year 必须是整数")
	}
	category := c.Param("filter_type")

	summary, err := s.collector.CollectFiltered(c.Request().Context(), year, category)
	if err != nil {
		var cfgErr *openreview.ConfigError
		if errors.As(err, &cfgErr) {
			return echo.NewHTTPError(http.StatusBadRequest, cfgErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"summary": summary,
	})
}

func (s *Server) handleCollectPapers(c echo.Context) error {
	req, err := bindYears(c)
	if err != nil {
		return err
	}

	summary, err := s.collector.CollectPapers(c.Request().Context(), req.Years)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": summary,
	})
}

func (s *Server) handleCollectAll(c echo.Context) error {
	req, err := bindYears(c)
	if err != nil {
		return err
	}

	summary, err := s.collector.CollectAll(c.Request().Context(), req.Years)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": summary,
	})
}

func bindYears(c echo.Context) (*YearRequest, error) {
	req := new(YearRequest)
	if err := c.Bind(req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "请求体解析失败: "+err.Error())
	}
	if len(req.Years) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "years 不能为空")
	}
	return req, nil
}
