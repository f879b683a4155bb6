package server

import (
	"context"

	"github.com/mkropachev/sign-station/internal/apperrors"
	"github.com/mkropachev/sign-station/internal/domain/artifact"
	"github.com/mkropachev/sign-station/internal/logger"
	"github.com/mkropachev/sign-station/internal/repository/store"
	"github.com/mkropachev/sign-station/internal/service/signer"
)

// Service runs the signing pipeline for one upload: validate and stage the
// archive, invoke the signer and derive the published URLs. All state is
// request-scoped; the service itself is immutable after construction and
// safe for concurrent use.
type Service struct {
	// allowlist authorizes claimed device identifiers.
	allowlist *artifact.Allowlist
	// store stages uploads and resolves published paths.
	store *store.Store
	// signer is the external code-signing capability.
	signer signer.Signer
}

// NewService wires the pipeline dependencies.
func NewService(allowlist *artifact.Allowlist, st *store.Store, sg signer.Signer) *Service {
	return &Service{
		allowlist: allowlist,
		store:     st,
		signer:    sg,
	}
}

// SignUpload executes ingest, sign and publish strictly in order and returns
// the three public URLs of the signed artifact. The staged working file is
// removed best-effort on every exit path.
func (s *Service) SignUpload(
	ctx context.Context,
	origin string,
	upload *artifact.UploadRequest,
) (*artifact.PublishedURLs, error) {
	if upload.UDID == "" {
		return nil, apperrors.Validationf("Device UDID is missing.")
	}

	udid := artifact.NormalizeUDID(upload.UDID)
	if !s.allowlist.Contains(udid) {
		logger.WarnKV(ctx, "Unauthorized UDID attempt", "udid", udid)

		return nil, apperrors.Authorizationf("Unauthorized UDID.")
	}

	if upload.Filename == "" || upload.Contents == nil {
		return nil, apperrors.Validationf("No file uploaded.")
	}

	id := artifact.NewIdentity(udid, artifact.SanitizeFilename(upload.Filename))

	if err := s.store.SaveWorking(id, upload.Contents); err != nil {
		return nil, err
	}

	// Cleanup runs on failures too: a signer crash must not leak staged files.
	defer s.store.RemoveWorking(ctx, id)

	result, err := s.signer.Sign(ctx, s.store.WorkingPath(id), s.store.PublicPath(id))
	if err != nil {
		return nil, err
	}

	urls := artifact.BuildURLs(origin, result, id)

	logger.InfoKV(ctx, "IPA signed",
		"artifact", id.String(),
		"bundle_id", result.BundleID,
		"bundle_version", result.BundleVersion)

	return urls, nil
}
