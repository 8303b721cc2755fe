// Package graph provides GraphQL resolvers for the social API.
// This file contains the query, mutation and field resolver implementations.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/apperrors"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/auth"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
)

// =============================================================================
// ARGUMENTS
// =============================================================================

func intArg(p graphql.ResolveParams, name string) (int, error) {
	v, ok := p.Args[name].(int)
	if !ok {
		return 0, fmt.Errorf("argument %q must be an Int: %w", name, apperrors.ErrInvalid)
	}
	return v, nil
}

func stringArg(p graphql.ResolveParams, name string) (string, error) {
	v, ok := p.Args[name].(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a String: %w", name, apperrors.ErrInvalid)
	}
	return v, nil
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

func stringListArg(p graphql.ResolveParams, name string) ([]string, error) {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument %q must be a list of String: %w", name, apperrors.ErrInvalid)
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a list of String: %w", name, apperrors.ErrInvalid)
		}
		values = append(values, s)
	}
	return values, nil
}

// =============================================================================
// QUERY RESOLVERS
// =============================================================================

func (r *Resolver) queryUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.store.ListUsers(p.Context)
	if err != nil {
		return nil, err
	}
	return mapUsers(users), nil
}

func (r *Resolver) queryUser(p graphql.ResolveParams) (interface{}, error) {
	id, err := intArg(p, "id")
	if err != nil {
		return nil, err
	}
	u, err := r.store.GetUser(p.Context, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return mapUserToGraphQL(u), nil
}

func (r *Resolver) queryPosts(p graphql.ResolveParams) (interface{}, error) {
	posts, err := r.store.ListPosts(p.Context)
	if err != nil {
		return nil, err
	}
	return mapPosts(posts), nil
}

func (r *Resolver) queryPost(p graphql.ResolveParams) (interface{}, error) {
	id, err := intArg(p, "id")
	if err != nil {
		return nil, err
	}
	post, err := r.store.GetPost(p.Context, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return mapPostToGraphQL(post), nil
}

func (r *Resolver) queryComments(p graphql.ResolveParams) (interface{}, error) {
	comments, err := r.store.ListComments(p.Context)
	if err != nil {
		return nil, err
	}
	return mapComments(comments), nil
}

func (r *Resolver) queryCommentsByPost(p graphql.ResolveParams) (interface{}, error) {
	postID, err := intArg(p, "postId")
	if err != nil {
		return nil, err
	}
	comments, err := r.store.ListCommentsByPost(p.Context, postID)
	if err != nil {
		return nil, err
	}
	return mapComments(comments), nil
}

func (r *Resolver) queryConnections(p graphql.ResolveParams) (interface{}, error) {
	userID, err := intArg(p, "userId")
	if err != nil {
		return nil, err
	}
	return r.connections(p, userID)
}

func (r *Resolver) querySentMessages(p graphql.ResolveParams) (interface{}, error) {
	senderID, err := intArg(p, "senderId")
	if err != nil {
		return nil, err
	}
	return r.sentMessages(p, senderID)
}

func (r *Resolver) queryReceivedMessages(p graphql.ResolveParams) (interface{}, error) {
	receiverID, err := intArg(p, "receiverId")
	if err != nil {
		return nil, err
	}
	return r.receivedMessages(p, receiverID)
}

func (r *Resolver) queryViewer(p graphql.ResolveParams) (interface{}, error) {
	userID, ok := auth.FromContext(p.Context).UserID()
	if !ok {
		return nil, nil
	}
	u, err := r.store.GetUser(p.Context, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return mapUserToGraphQL(u), nil
}

// =============================================================================
// MUTATION RESOLVERS
// =============================================================================

func (r *Resolver) mutationCreateUser(p graphql.ResolveParams) (interface{}, error) {
	name, err := stringArg(p, "name")
	if err != nil {
		return nil, err
	}
	skills, err := stringListArg(p, "skills")
	if err != nil {
		return nil, err
	}

	u, err := r.store.CreateUser(p.Context, &database.User{
		Name:     name,
		JobTitle: database.ToNullString(optionalStringArg(p, "jobTitle")),
		Skills:   skills,
	})
	if err != nil {
		return nil, err
	}
	return mapUserToGraphQL(u), nil
}

func (r *Resolver) mutationCreatePost(p graphql.ResolveParams) (interface{}, error) {
	content, err := stringArg(p, "content")
	if err != nil {
		return nil, err
	}
	authorID, err := intArg(p, "authorId")
	if err != nil {
		return nil, err
	}

	post, err := r.store.CreatePost(p.Context, &database.Post{
		Content:  content,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}
	return mapPostToGraphQL(post), nil
}

func (r *Resolver) mutationCreateComment(p graphql.ResolveParams) (interface{}, error) {
	postID, err := intArg(p, "postId")
	if err != nil {
		return nil, err
	}
	authorID, err := intArg(p, "authorId")
	if err != nil {
		return nil, err
	}
	content, err := stringArg(p, "content")
	if err != nil {
		return nil, err
	}

	comment, err := r.store.CreateComment(p.Context, &database.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}
	return mapCommentToGraphQL(comment), nil
}

// =============================================================================
// FIELD RESOLVERS
// =============================================================================

func (r *Resolver) userPosts(p graphql.ResolveParams) (interface{}, error) {
	u := p.Source.(*User)
	posts, err := r.store.ListPostsByAuthor(p.Context, u.ID)
	if err != nil {
		return nil, err
	}
	return mapPosts(posts), nil
}

func (r *Resolver) userConnections(p graphql.ResolveParams) (interface{}, error) {
	return r.connections(p, p.Source.(*User).ID)
}

func (r *Resolver) userSentMessages(p graphql.ResolveParams) (interface{}, error) {
	return r.sentMessages(p, p.Source.(*User).ID)
}

func (r *Resolver) userReceivedMessages(p graphql.ResolveParams) (interface{}, error) {
	return r.receivedMessages(p, p.Source.(*User).ID)
}

func (r *Resolver) postAuthor(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Post).AuthorID)
}

func (r *Resolver) postComments(p graphql.ResolveParams) (interface{}, error) {
	comments, err := r.store.ListCommentsByPost(p.Context, p.Source.(*Post).ID)
	if err != nil {
		return nil, err
	}
	return mapComments(comments), nil
}

func (r *Resolver) commentPost(p graphql.ResolveParams) (interface{}, error) {
	postID := p.Source.(*Comment).PostID
	post, err := r.store.GetPost(p.Context, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.WrapNotFound(fmt.Errorf("post %d", postID), "graph", "Comment.post")
	}
	return mapPostToGraphQL(post), nil
}

func (r *Resolver) commentAuthor(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Comment).AuthorID)
}

func (r *Resolver) connectionUser1(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Connection).User1ID)
}

func (r *Resolver) connectionUser2(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Connection).User2ID)
}

func (r *Resolver) messageSender(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Message).SenderID)
}

func (r *Resolver) messageReceiver(p graphql.ResolveParams) (interface{}, error) {
	return r.requireUser(p, p.Source.(*Message).ReceiverID)
}

// =============================================================================
// SHARED
// =============================================================================

// connections applies the symmetric connection rule for userID.
func (r *Resolver) connections(p graphql.ResolveParams, userID int) (interface{}, error) {
	edges, err := r.store.ListConnectionEdges(p.Context, userID)
	if err != nil {
		return nil, err
	}
	return mapUsers(connectedUsers(userID, edges)), nil
}

func (r *Resolver) sentMessages(p graphql.ResolveParams, senderID int) (interface{}, error) {
	messages, err := r.store.ListMessagesBySender(p.Context, senderID)
	if err != nil {
		return nil, err
	}
	return mapMessages(messages), nil
}

func (r *Resolver) receivedMessages(p graphql.ResolveParams, receiverID int) (interface{}, error) {
	messages, err := r.store.ListMessagesByReceiver(p.Context, receiverID)
	if err != nil {
		return nil, err
	}
	return mapMessages(messages), nil
}

// requireUser loads a user referenced by a non-null relation. A missing row
// is a NotFound error rather than null.
func (r *Resolver) requireUser(p graphql.ResolveParams, id int) (interface{}, error) {
	u, err := r.store.GetUser(p.Context, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.WrapNotFound(fmt.Errorf("user %d", id), "graph", p.Info.ParentType.Name()+"."+p.Info.FieldName)
	}
	return mapUserToGraphQL(u), nil
}
