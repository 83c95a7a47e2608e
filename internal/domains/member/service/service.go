package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"seatdesk/config"
	"seatdesk/infras/otel"
	"seatdesk/infras/s3"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	attendanceRepository "seatdesk/internal/domains/attendance/repository"
	attendanceService "seatdesk/internal/domains/attendance/service"
	"seatdesk/internal/domains/member/model"
	"seatdesk/internal/domains/member/model/dto"
	"seatdesk/internal/domains/member/repository"
	roomModel "seatdesk/internal/domains/room/model"
	roomRepository "seatdesk/internal/domains/room/repository"
	"seatdesk/shared"
	"seatdesk/shared/cache"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
	"seatdesk/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var errSeatTaken = failure.Conflict("seat is already held by another member")

var sortableColumns = []string{
	model.FieldName,
	model.FieldMobile,
	model.FieldStatus,
	model.FieldSeatNo,
	model.FieldAdmissionDate,
	constant.FieldCreatedAt,
}

type Member interface {
	Create(ctx context.Context, req dto.CreateMemberRequest) (dto.MemberResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMembersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.MemberResponse, error)
	Update(ctx context.Context, req dto.UpdateMemberRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Member
	roomRepo roomRepository.Room
	logRepo  attendanceRepository.Attendance
	presence attendanceService.Presence
	tx       transaction.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Member,
	roomRepo roomRepository.Room,
	logRepo attendanceRepository.Attendance,
	presence attendanceService.Presence,
	tx transaction.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Member {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		logRepo:  logRepo,
		presence: presence,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

// Create admits a member. Reserved members must name a free seat inside the room's capacity.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMemberRequest) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.SeatType == model.SeatTypeReserved {
		if err = s.checkSeat(ctx, req.RoomID, req.SeatNo, constant.Empty); err != nil {
			return res, err
		}
	}

	photoURL, objectKey, err := s.uploadPhoto(ctx, req.PhotoFile, req.Photo)
	if err != nil {
		return res, err
	}

	member := req.ToModel(user, photoURL)

	if err = s.repo.Insert(ctx, member); err != nil {
		s.removePhoto(ctx, objectKey)

		if isUniqueViolation(err) {
			return res, errSeatTaken
		}

		log.Error().Err(err).Msg("failed to create member")

		return res, fmt.Errorf("failed to create member: %w", err)
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllMember)
		shared.InvalidateCaches(c, s.cache, model.CacheCountMember)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Sort(sortableColumns, model.FieldName, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllMember, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for members")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count members")

		return res, fmt.Errorf("failed to count members: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get members")

		return res, fmt.Errorf("failed to get members: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save members to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountMember, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count members")

		return res, fmt.Errorf("failed to count members: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save member count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGetMember, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for member")

		return res, nil
	}

	member, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get member")

		return res, fmt.Errorf("failed to get member: %w", err)
	}

	if member.ID == constant.Empty {
		return res, failure.MemberNotFound
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save member to cache")
		}
	}()

	return res, nil
}

// Update applies the plain columns as given. Switching to General clears the seat and keeps
// the room as a preference, unless the member is inside: the seat then stays with them until
// checkout releases it. Switching to Reserved needs a free room and seat. Room and seat of a
// General member belong to the allocator and are not editable here.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMemberRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return fmt.Errorf("failed to get member: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.MemberNotFound
	}

	updatedFields := shared.TransformFields(req, user)

	if req.ChangesPlacement() {
		seatType, roomID, seatNo := req.Placement(current)

		switch seatType {
		case model.SeatTypeReserved:
			if roomID == constant.Empty || seatNo == 0 {
				return failure.BadRequestFromString("reserved members need room_id and seat_no") // nolint:wrapcheck
			}

			if err = s.checkSeat(ctx, roomID, seatNo, id); err != nil {
				return err
			}

			updatedFields[model.FieldRoomID] = roomID
			updatedFields[model.FieldSeatNo] = seatNo
		case model.SeatTypeGeneral:
			if current.IsReserved() {
				presence, err := s.presence.Resolve(ctx, id, timezone.Now())
				if err != nil {
					log.Error().Err(err).Msg("failed to resolve member presence")

					return fmt.Errorf("failed to resolve member presence: %w", err)
				}

				if !presence.Inside() {
					updatedFields[model.FieldSeatNo] = nil
				}
			}
		}

		updatedFields[model.FieldSeatType] = seatType
	}

	photoURL, objectKey, err := s.uploadPhoto(ctx, req.PhotoFile, req.Photo)
	if err != nil {
		return err
	}

	if photoURL != constant.Empty {
		updatedFields[model.FieldPhoto] = photoURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		s.removePhoto(ctx, objectKey)

		if isUniqueViolation(err) {
			return errSeatTaken
		}

		log.Error().Err(err).Msg("failed to update member")

		return fmt.Errorf("failed to update member: %w", err)
	}

	if photoURL != constant.Empty && current.Photo != constant.Empty {
		s.removePhoto(ctx, s.s3.ObjectKeyFromURL(current.Photo))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetMember, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete member cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllMember)
		shared.InvalidateCaches(c, s.cache, model.CacheCountMember)
	}()

	return nil
}

// Delete removes the member together with every attendance log they wrote.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldPhoto)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if member exists")

		return fmt.Errorf("failed to check if member exists: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.MemberNotFound
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		if err := s.logRepo.DeleteTx(ctx, sqltx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    attendanceModel.FieldStudentID,
					Value:    id,
					Operator: gDto.FilterOperatorEq,
					Table:    attendanceModel.TableName,
				},
			},
		}); err != nil {
			return fmt.Errorf("failed to delete attendance logs: %w", err)
		}

		return s.repo.DeleteTx(ctx, sqltx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete member")

		return fmt.Errorf("failed to delete member: %w", err)
	}

	if current.Photo != constant.Empty {
		s.removePhoto(ctx, s.s3.ObjectKeyFromURL(current.Photo))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetMember, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete member from cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllMember)
		shared.InvalidateCaches(c, s.cache, model.CacheCountMember)
	}()

	return nil
}

// checkSeat verifies that seatNo exists in roomID and nobody but memberID is using it. A General
// holder who is not inside today only left the number behind; their claim is cleared the same
// way the allocator reclaims it.
func (s *serviceImpl) checkSeat(ctx context.Context, roomID string, seatNo int, memberID string) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldID, roomModel.FieldCapacity)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if seatNo < 1 || seatNo > room.Capacity {
		return failure.BadRequestFromString(fmt.Sprintf("seat_no must be between 1 and %d", room.Capacity)) // nolint:wrapcheck
	}

	held := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSeatNo,
				Value:    seatNo,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if memberID != constant.Empty {
		held.Filters = append(held.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    memberID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	holders, err := s.repo.GetAll(ctx, gDto.QueryParams{}, held, model.FieldID, model.FieldSeatType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seat holders")

		return fmt.Errorf("failed to get seat holders: %w", err)
	}

	if len(holders) == 0 {
		return nil
	}

	inside, err := s.presence.InsideSet(ctx, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to load inside set")

		return fmt.Errorf("failed to load inside set: %w", err)
	}

	stale := make([]string, 0, len(holders))

	for _, holder := range holders {
		if holder.IsReserved() || inside.Has(holder.ID) {
			return errSeatTaken
		}

		stale = append(stale, holder.ID)
	}

	return s.vacate(ctx, stale)
}

// vacate clears seat_no of members who are not inside; room_id stays as their preference.
func (s *serviceImpl) vacate(ctx context.Context, memberIDs []string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err := s.repo.Update(ctx, map[string]any{
		model.FieldSeatNo:        nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    memberIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to vacate stale seat")

		return fmt.Errorf("failed to vacate stale seat: %w", err)
	}

	log.Info().Strs("member_ids", memberIDs).Msg("reclaimed seat left by members who are not inside")

	return nil
}

func (s *serviceImpl) uploadPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectKey string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	fileName := uuid.NewString()
	if ext := path.Ext(header.Filename); ext != constant.Empty {
		fileName += strings.ToLower(ext)
	}

	objectKey, url, err = s.s3.UploadFile(ctx, model.EntityName, file, header, fileName)
	if err != nil {
		if errors.Is(err, s3.ErrUnsupportedContentType) {
			return constant.Empty, constant.Empty, failure.BadRequestFromString("photo must be a jpeg, png or webp image") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to upload member photo")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload photo: %w", err)
	}

	return url, objectKey, nil
}

func (s *serviceImpl) removePhoto(ctx context.Context, objectKey string) {
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("object", objectKey).Msg("failed to remove member photo")
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation
}
