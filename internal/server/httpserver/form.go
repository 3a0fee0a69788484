package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/services"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

// medicineForm is the add/update request: text fields plus two optional
// files, sent as multipart/form-data.
type medicineForm struct {
	UserName      string                `form:"userName" json:"userName"`
	Age           string                `form:"age" json:"age"`
	Contact       string                `form:"contact" json:"contact"`
	DrugName      string                `form:"drugName" json:"drugName"`
	MedicineType  string                `form:"medicineType" json:"medicineType"`
	ProfileImage  *multipart.FileHeader `form:"profileImage" json:"-"`
	DocumentProof *multipart.FileHeader `form:"documentProof" json:"-"`
}

func (f *medicineForm) input() services.MedicineInput {
	return services.MedicineInput{
		UserName:     f.UserName,
		Age:          f.Age,
		Contact:      f.Contact,
		DrugName:     f.DrugName,
		MedicineType: f.MedicineType,
	}
}

// openedAttachments holds the uploads of one request and closes their
// files once the request is served.
type openedAttachments struct {
	services.Attachments
	closers []io.Closer
}

func (o *openedAttachments) Close() {
	for _, c := range o.closers {
		_ = c.Close()
	}
}

func (o *openedAttachments) fields() []string {
	var out []string
	if o.ProfileImage != nil {
		out = append(out, common.FieldProfileImage)
	}
	if o.DocumentProof != nil {
		out = append(out, common.FieldDocumentProof)
	}
	return out
}

// open returns nil for a field that carried no file. Browsers send an empty
// file input as a text part, which binds to a FileHeader without a name.
func (o *openedAttachments) open(field string, fh *multipart.FileHeader) (*storage.Upload, error) {
	if fh == nil || fh.Filename == "" {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	o.closers = append(o.closers, f)
	return &storage.Upload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, nil
}

// bindMedicineForm parses the request body, bounded by maxUploadSize, into
// the service input and its attachments. The caller must Close the result.
func (s *Server) bindMedicineForm(c *gin.Context) (services.MedicineInput, *openedAttachments, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadSize)

	var form medicineForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.MedicineInput{}, nil, errPayloadTooLarge
		}
		s.logger.Warn(c.Request.Context(), "malformed medicine form", "error", err)
		return services.MedicineInput{}, nil, errMalformedForm
	}

	att := &openedAttachments{}
	var err error
	if att.ProfileImage, err = att.open(common.FieldProfileImage, form.ProfileImage); err != nil {
		att.Close()
		return services.MedicineInput{}, nil, err
	}
	if att.DocumentProof, err = att.open(common.FieldDocumentProof, form.DocumentProof); err != nil {
		att.Close()
		return services.MedicineInput{}, nil, err
	}
	return form.input(), att, nil
}
