package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/pipeline"
	"github.com/ppiankov/statementizer/internal/table"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type strategyInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

func (s *Server) strategies(c *gin.Context) {
	aliases := model.StrategyAliases()

	out := make([]strategyInfo, 0, len(model.Strategies()))
	for _, st := range model.Strategies() {
		a := aliases[st]
		if a == nil {
			a = []string{}
		}
		out = append(out, strategyInfo{Name: st.String(), Aliases: a})
	}

	c.JSON(http.StatusOK, gin.H{
		"strategies": out,
		"default":    s.config.Segmentation.Strategy,
	})
}

// segment expands an uploaded table into a statement table.
// Form fields override the server configuration for this request only.
func (s *Server) segment(c *gin.Context) {
	t, ok := s.readUpload(c)
	if !ok {
		return
	}

	cfg := *s.config
	cfg.Classify.Enabled = false

	if v := c.PostForm("id_column"); v != "" {
		cfg.Input.IDColumn = v
	}
	if v := c.PostForm("text_column"); v != "" {
		cfg.Input.TextColumn = v
	}
	if v, ok := c.GetPostForm("speaker_column"); ok {
		cfg.Input.SpeakerColumn = v
	}
	if v := c.PostForm("strategy"); v != "" {
		cfg.Segmentation.Strategy = v
	}
	if err := boolField(c, "tags", &cfg.Segmentation.ExtractTags); err != nil {
		abortWithError(c, http.StatusBadRequest, ErrorBadRequest, err)
		return
	}
	if err := boolField(c, "strip_html", &cfg.Segmentation.StripHTML); err != nil {
		abortWithError(c, http.StatusBadRequest, ErrorBadRequest, err)
		return
	}

	outFormat, err := table.ParseFormat(c.DefaultPostForm("format", string(table.FormatCSV)))
	if err != nil {
		abortWithConfigError(c, err)
		return
	}

	strategy, err := model.ParseStrategy(cfg.Segmentation.Strategy)
	if err != nil {
		abortWithConfigError(c, err)
		return
	}

	var opts []pipeline.Option
	if s.cache != nil {
		opts = append(opts, pipeline.WithCache(s.cache))
	}
	if strategy == model.StrategyLinguistic {
		opts = append(opts, pipeline.WithSentenceModel(s.model))
	}

	p, err := pipeline.NewPipeline(&cfg, opts...)
	if err != nil {
		abortWithConfigError(c, err)
		return
	}

	out, stats, err := p.Process(t)
	if err != nil {
		abortWithConfigError(c, err)
		return
	}

	c.Header("X-Source-Rows", strconv.Itoa(stats.SourceRows))
	c.Header("X-Statements", strconv.Itoa(stats.Statements))
	s.sendTable(c, out, outFormat, "statements")
}

// classify appends tactic columns to an uploaded table and returns CSV
func (s *Server) classify(c *gin.Context) {
	t, ok := s.readUpload(c)
	if !ok {
		return
	}

	column := c.DefaultPostForm("column", model.ColumnStatement)
	if err := s.classifier.Apply(t, column); err != nil {
		abortWithConfigError(c, err)
		return
	}

	s.sendTable(c, t, table.FormatCSV, "classified")
}

// readUpload parses the "file" form field as CSV or Parquet based on its name
func (s *Server) readUpload(c *gin.Context) (*model.Table, bool) {
	if limit := s.config.Server.MaxUploadBytes; limit > 0 {
		if c.Request.ContentLength > limit {
			abortWithError(c, http.StatusRequestEntityTooLarge, ErrorFileTooLarge,
				fmt.Errorf("upload exceeds %d bytes", limit))
			return nil, false
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, ErrorFileTooLarge, err)
			return nil, false
		}
		abortWithError(c, http.StatusBadRequest, ErrorBadRequest, fmt.Errorf("file upload: %w", err))
		return nil, false
	}

	format, err := table.DetectFormat(fh.Filename)
	if err != nil {
		abortWithConfigError(c, err)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, ErrorFileInvalid, err)
		return nil, false
	}
	defer func() { _ = f.Close() }()

	t, err := table.Read(f, fh.Size, format)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, ErrorFileInvalid, err)
		return nil, false
	}

	return t, true
}

func (s *Server) sendTable(c *gin.Context, t *model.Table, format table.Format, name string) {
	var buf bytes.Buffer
	if err := table.Write(&buf, format, t); err != nil {
		abortWithError(c, http.StatusInternalServerError, ErrorInternal, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, name, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func boolField(c *gin.Context, name string, dst *bool) error {
	v, ok := c.GetPostForm(name)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("field %s: %q is not a boolean", name, v)
	}
	*dst = b
	return nil
}
